package pharmacy

import (
	"errors"
	"testing"

	"github.com/erx/erx/internal/platform/validate"
)

func TestCatalog_Valid(t *testing.T) {
	v := validate.New()
	seen := make(map[string]bool)
	for _, p := range catalog {
		if err := v.Struct(&p); err != nil {
			t.Errorf("%s: %v", p.ID, err)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if len(catalog) != 10 {
		t.Errorf("expected 10 pharmacies, got %d", len(catalog))
	}
}

func TestChain(t *testing.T) {
	tests := map[string]string{
		"CVS Pharmacy #1234": "CVS Pharmacy",
		"Community Pharmacy": "Community Pharmacy",
		"#1":                 "#1",
	}
	for name, want := range tests {
		p := Pharmacy{Name: name}
		if got := p.Chain(); got != want {
			t.Errorf("Chain(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	d := NewDirectory()
	tests := []struct {
		ref    string
		wantID string
	}{
		{"PH002", "PH002"},
		{"ph003", "PH003"},
		{"CVS Pharmacy", "PH001"},
		{"walgreens #5678", "PH002"},
		{"  Community Pharmacy ", "PH004"},
		{"Corner Drugstore", ""},
		{"", ""},
	}
	for _, tt := range tests {
		p, ok := d.Resolve(tt.ref)
		if tt.wantID == "" {
			if ok {
				t.Errorf("Resolve(%q) = %s, want no match", tt.ref, p.ID)
			}
			continue
		}
		if !ok || p.ID != tt.wantID {
			t.Errorf("Resolve(%q) = %v, want %s", tt.ref, p, tt.wantID)
		}
	}

	if name, ok := d.CanonicalName("Rite Aid"); !ok || name != "Rite Aid #9101" {
		t.Errorf("CanonicalName = %q, %v", name, ok)
	}
}

func TestList(t *testing.T) {
	d := NewDirectory()
	if got := d.List(""); len(got) != 10 {
		t.Errorf("expected all pharmacies, got %d", len(got))
	}
	if got := d.List("pharmacy #"); len(got) != 4 {
		t.Errorf("expected 4 numbered pharmacies, got %d", len(got))
	}
	if got := d.List("MO 63166"); len(got) != 1 || got[0].ID != "PH008" {
		t.Errorf("address search = %+v", got)
	}
	if got := d.List("nowhere"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	if _, err := NewDirectory().Get("PH999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
