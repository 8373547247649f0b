package patient

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("patient not found")
	ErrInvalidInput = errors.New("invalid patient")
)

type Repository interface {
	// Create stores p, assigning the next P### id when p.ID is empty.
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	// List returns patients whose name or id contains query, ordered by id.
	List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
}
