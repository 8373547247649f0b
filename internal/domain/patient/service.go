package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create registers a patient from a validated request. Conditions are
// stamped with today's date.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	dob, err := time.Parse(time.DateOnly, req.DOB)
	if err != nil {
		return nil, fmt.Errorf("%w: dob must be YYYY-MM-DD", ErrInvalidInput)
	}
	now := s.now().UTC()
	if dob.After(now) {
		return nil, fmt.Errorf("%w: dob is in the future", ErrInvalidInput)
	}

	p := &Patient{
		Name:        strings.TrimSpace(req.Name),
		DOB:         dob,
		Allergies:   []string{},
		Insurance:   req.Insurance,
		MedicareID:  strings.TrimSpace(req.MedicareID),
		MedicaidID:  strings.TrimSpace(req.MedicaidID),
		Conditions:  []Condition{},
		Medications: []Medication{},
	}
	for _, a := range req.Allergies {
		p.Allergies = append(p.Allergies, strings.TrimSpace(a))
	}
	today := now.Format(time.DateOnly)
	for _, c := range req.Conditions {
		p.Conditions = append(p.Conditions, Condition{
			ID:            "C-" + uuid.NewString(),
			Name:          strings.TrimSpace(c.Name),
			ICD10Code:     strings.ToUpper(c.ICD10Code),
			DiagnosedDate: today,
		})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Age = p.AgeOn(now)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Age = p.AgeOn(s.now())
	return p, nil
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	patients, total, err := s.repo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for _, p := range patients {
		p.Age = p.AgeOn(now)
	}
	return patients, total, nil
}

// Medications returns the patient's medication history.
func (s *Service) Medications(ctx context.Context, id string) ([]Medication, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Medications == nil {
		return []Medication{}, nil
	}
	return p.Medications, nil
}
