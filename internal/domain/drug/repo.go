package drug

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no drug matches an id or name.
var ErrNotFound = errors.New("drug not found")

// Repository reads the drug catalog.
type Repository interface {
	List(ctx context.Context) ([]*Drug, error)
	GetByID(ctx context.Context, id string) (*Drug, error)
	// FindByName returns the first drug whose generic name or name contains
	// name, ignoring case.
	FindByName(ctx context.Context, name string) (*Drug, error)
	Search(ctx context.Context, query string, limit int) ([]*Drug, error)
}
