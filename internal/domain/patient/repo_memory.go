package patient

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type memoryRepo struct {
	mu       sync.RWMutex
	patients map[string]*Patient
	now      func() time.Time
}

// NewMemoryRepo returns a process-local repository.
func NewMemoryRepo() Repository {
	return &memoryRepo{patients: make(map[string]*Patient), now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("P%03d", r.maxNumber()+1)
	}
	if _, dup := r.patients[p.ID]; dup {
		return fmt.Errorf("%w: id %s already exists", ErrInvalidInput, p.ID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}
	r.patients[p.ID] = p.clone()
	return nil
}

// maxNumber is the largest numeric suffix among P### ids. Callers hold mu.
func (r *memoryRepo) maxNumber() int {
	max := 0
	for id := range r.patients {
		if !strings.HasPrefix(id, "P") {
			continue
		}
		if n, err := strconv.Atoi(id[1:]); err == nil && n > max {
			max = n
		}
	}
	return max
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.clone(), nil
}

func (r *memoryRepo) List(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	r.mu.RLock()
	var matched []*Patient
	for _, p := range r.patients {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.ID), q) {
			matched = append(matched, p.clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	if offset >= total {
		return []*Patient{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}
