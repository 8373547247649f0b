package prescription

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps prescriptions and refill requests in process memory.
// It backs the service when no database is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	prescriptions map[uuid.UUID]*Prescription
	refills       map[uuid.UUID]*RefillRequest
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		prescriptions: make(map[uuid.UUID]*Prescription),
		refills:       make(map[uuid.UUID]*RefillRequest),
		now:           time.Now,
	}
}

func (s *MemoryStore) Prescriptions() PrescriptionRepository { return (*memPrescriptions)(s) }
func (s *MemoryStore) Refills() RefillRepository             { return (*memRefills)(s) }

type memTxKey struct{}

// memTx collects undo steps for the writes made inside one InTx call.
type memTx struct {
	undo []func()
}

// InTx serializes fn against other InTx callers and undoes the writes fn
// made through the store when it fails. Nested calls join the outer one.
func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memTx{}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// onRollback registers undo for the transaction in ctx, if any. Callers hold
// mu, and undo runs under mu.
func onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

type memPrescriptions MemoryStore

func (r *memPrescriptions) Create(ctx context.Context, p *Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.now().UTC()
	if p.PrescribedAt.IsZero() {
		p.PrescribedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	r.prescriptions[p.ID] = &cp
	id := p.ID
	onRollback(ctx, func() { delete(r.prescriptions, id) })
	return nil
}

func (r *memPrescriptions) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPrescriptions) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Status != from {
		return nil, ErrInvalidTransition
	}
	prevUpdated := p.UpdatedAt
	onRollback(ctx, func() {
		p.Status = from
		p.UpdatedAt = prevUpdated
	})
	p.Status = to
	p.UpdatedAt = r.now().UTC()
	cp := *p
	return &cp, nil
}

func (r *memPrescriptions) DecrementRefills(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Refills <= 0 {
		return nil, ErrNoRefills
	}
	prevUpdated := p.UpdatedAt
	onRollback(ctx, func() {
		p.Refills++
		p.UpdatedAt = prevUpdated
	})
	p.Refills--
	p.UpdatedAt = r.now().UTC()
	cp := *p
	return &cp, nil
}

// List returns matches newest first.
func (r *memPrescriptions) List(_ context.Context, f ListFilter, limit, offset int) ([]*Prescription, int, error) {
	r.mu.RLock()
	var matched []*Prescription
	for _, p := range r.prescriptions {
		if f.matches(p) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PrescribedAt.Equal(matched[j].PrescribedAt) {
			return matched[i].PrescribedAt.After(matched[j].PrescribedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, limit, offset), len(matched), nil
}

func (r *memPrescriptions) Stats(_ context.Context) (map[Status]int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byStatus := make(map[Status]int)
	controlled := 0
	for _, p := range r.prescriptions {
		byStatus[p.Status]++
		if p.IsControlled {
			controlled++
		}
	}
	return byStatus, controlled, nil
}

type memRefills MemoryStore

func (r *memRefills) Create(ctx context.Context, rr *RefillRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rr.ID == uuid.Nil {
		rr.ID = uuid.New()
	}
	now := r.now().UTC()
	if rr.CreatedAt.IsZero() {
		rr.CreatedAt = now
	}
	rr.UpdatedAt = now
	cp := *rr
	r.refills[rr.ID] = &cp
	id := rr.ID
	onRollback(ctx, func() { delete(r.refills, id) })
	return nil
}

func (r *memRefills) GetByID(_ context.Context, id uuid.UUID) (*RefillRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rr, ok := r.refills[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rr
	return &cp, nil
}

func (r *memRefills) Decide(ctx context.Context, id uuid.UUID, to RefillStatus, remaining int) (*RefillRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rr, ok := r.refills[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rr.Status != RefillPending {
		return nil, ErrInvalidTransition
	}
	prevRemaining, prevUpdated := rr.RemainingRefills, rr.UpdatedAt
	onRollback(ctx, func() {
		rr.Status = RefillPending
		rr.RemainingRefills = prevRemaining
		rr.UpdatedAt = prevUpdated
	})
	rr.Status = to
	rr.RemainingRefills = remaining
	rr.UpdatedAt = r.now().UTC()
	cp := *rr
	return &cp, nil
}

// List returns requests oldest first so the queue is worked in order.
func (r *memRefills) List(_ context.Context, status RefillStatus, limit, offset int) ([]*RefillRequest, int, error) {
	r.mu.RLock()
	var matched []*RefillRequest
	for _, rr := range r.refills {
		if status == "" || rr.Status == status {
			cp := *rr
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, limit, offset), len(matched), nil
}

func (r *memRefills) CountPending(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, rr := range r.refills {
		if rr.Status == RefillPending {
			n++
		}
	}
	return n, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
