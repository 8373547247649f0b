package pharmacy

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("pharmacy not found")

// Directory is a read-only list of pharmacies, safe for concurrent use.
type Directory struct {
	pharmacies []Pharmacy
}

// NewDirectory returns the built-in pharmacy directory.
func NewDirectory() *Directory {
	return NewDirectoryWith(catalog)
}

func NewDirectoryWith(pharmacies []Pharmacy) *Directory {
	cp := make([]Pharmacy, len(pharmacies))
	copy(cp, pharmacies)
	return &Directory{pharmacies: cp}
}

// List returns pharmacies whose name or address contains query,
// case-insensitively. An empty query returns all of them.
func (d *Directory) List(query string) []Pharmacy {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Pharmacy{}
	for _, p := range d.pharmacies {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Address), q) {
			out = append(out, p)
		}
	}
	return out
}

func (d *Directory) Get(id string) (*Pharmacy, error) {
	for i := range d.pharmacies {
		if strings.EqualFold(d.pharmacies[i].ID, id) {
			p := d.pharmacies[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Resolve finds the pharmacy a prescription names. It accepts the id, the
// full name or the chain name, all case-insensitive; the first match in
// directory order wins.
func (d *Directory) Resolve(ref string) (*Pharmacy, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	if p, err := d.Get(ref); err == nil {
		return p, true
	}
	for i := range d.pharmacies {
		p := d.pharmacies[i]
		if strings.EqualFold(p.Name, ref) || strings.EqualFold(p.Chain(), ref) {
			return &p, true
		}
	}
	return nil, false
}

// CanonicalName returns the directory name for ref.
func (d *Directory) CanonicalName(ref string) (string, bool) {
	p, ok := d.Resolve(ref)
	if !ok {
		return "", false
	}
	return p.Name, true
}
