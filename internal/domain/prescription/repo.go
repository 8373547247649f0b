package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoRefills         = errors.New("prescription has no refills remaining")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownPatient    = fmt.Errorf("%w: unknown patient", ErrInvalidInput)
	ErrUnknownPharmacy   = fmt.Errorf("%w: unknown pharmacy", ErrInvalidInput)
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	// UpdateStatus moves a prescription from one status to another. It fails
	// with ErrInvalidTransition if the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Prescription, error)
	// DecrementRefills uses one refill. It fails with ErrNoRefills at zero.
	DecrementRefills(ctx context.Context, id uuid.UUID) (*Prescription, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Prescription, int, error)
	// Stats returns counts per status and the number of controlled prescriptions.
	Stats(ctx context.Context) (map[Status]int, int, error)
}

type RefillRepository interface {
	Create(ctx context.Context, r *RefillRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*RefillRequest, error)
	// Decide records the decision for a pending request. It fails with
	// ErrInvalidTransition if the request is no longer pending.
	Decide(ctx context.Context, id uuid.UUID, to RefillStatus, remaining int) (*RefillRequest, error)
	List(ctx context.Context, status RefillStatus, limit, offset int) ([]*RefillRequest, int, error)
	CountPending(ctx context.Context) (int, error)
}

// Transactor runs fn atomically with respect to the repositories.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
