package drug

import (
	"context"
	"fmt"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetDrug(ctx context.Context, id string) (*Drug, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByName(ctx context.Context, name string) (*Drug, error) {
	return s.repo.FindByName(ctx, name)
}

// SearchDrugs clamps limit to [1, 100], defaulting to 20.
func (s *Service) SearchDrugs(ctx context.Context, query string, limit int) ([]*Drug, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	drugs, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search drugs: %w", err)
	}
	return drugs, nil
}

// ScheduleFor returns the schedule class of the first drug matching name,
// or "" when the drug is unknown or not controlled.
func (s *Service) ScheduleFor(ctx context.Context, name string) string {
	d, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return ""
	}
	return d.ScheduleClass
}
