package drug

import (
	"context"
	"strings"
)

type memoryRepo struct {
	drugs []Drug
	byID  map[string]int
}

// NewMemoryRepo returns a Repository over the built-in formulary.
func NewMemoryRepo() Repository {
	return NewMemoryRepoWith(formulary)
}

// NewMemoryRepoWith returns a Repository over the given drugs. The slice is
// copied.
func NewMemoryRepoWith(drugs []Drug) Repository {
	r := &memoryRepo{
		drugs: make([]Drug, 0, len(drugs)),
		byID:  make(map[string]int, len(drugs)),
	}
	for i := range drugs {
		r.byID[drugs[i].ID] = len(r.drugs)
		r.drugs = append(r.drugs, *drugs[i].clone())
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]*Drug, error) {
	out := make([]*Drug, 0, len(r.drugs))
	for i := range r.drugs {
		out = append(out, r.drugs[i].clone())
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Drug, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.drugs[idx].clone(), nil
}

func (r *memoryRepo) FindByName(_ context.Context, name string) (*Drug, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, ErrNotFound
	}
	for i := range r.drugs {
		if r.drugs[i].matches(q) {
			return r.drugs[i].clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Search matches query against name, generic name and brand name. An empty
// query returns the first limit drugs.
func (r *memoryRepo) Search(_ context.Context, query string, limit int) ([]*Drug, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []*Drug{}
	for i := range r.drugs {
		if limit > 0 && len(out) >= limit {
			break
		}
		d := &r.drugs[i]
		if q == "" || d.matches(q) || strings.Contains(strings.ToLower(d.BrandName), q) {
			out = append(out, d.clone())
		}
	}
	return out, nil
}
