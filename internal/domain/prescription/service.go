package prescription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScheduleLookup resolves the DEA schedule class of a medication name.
type ScheduleLookup interface {
	ScheduleFor(ctx context.Context, name string) string
}

// PatientDirectory resolves a patient id to the name on record.
// Missing ids yield ErrUnknownPatient.
type PatientDirectory interface {
	PatientName(ctx context.Context, id string) (string, error)
}

// PharmacyLookup maps a pharmacy id or name to its canonical name.
type PharmacyLookup interface {
	CanonicalName(ref string) (string, bool)
}

type Service struct {
	prescriptions PrescriptionRepository
	refills       RefillRepository
	tx            Transactor
	schedules     ScheduleLookup
	patients      PatientDirectory
	pharmacies    PharmacyLookup
}

func NewService(rx PrescriptionRepository, rf RefillRepository, tx Transactor, schedules ScheduleLookup) *Service {
	return &Service{prescriptions: rx, refills: rf, tx: tx, schedules: schedules}
}

// SetPatients makes Create check patient ids and take names from the record.
func (s *Service) SetPatients(p PatientDirectory) {
	s.patients = p
}

// SetPharmacies makes pharmacy references resolve against a directory.
func (s *Service) SetPharmacies(p PharmacyLookup) {
	s.pharmacies = p
}

func (s *Service) pharmacyName(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if s.pharmacies == nil {
		return ref, nil
	}
	name, ok := s.pharmacies.CanonicalName(ref)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPharmacy, ref)
	}
	return name, nil
}

func (s *Service) patientName(ctx context.Context, req CreateRequest) (string, error) {
	name := strings.TrimSpace(req.PatientName)
	if s.patients != nil {
		stored, err := s.patients.PatientName(ctx, req.PatientID)
		if err != nil {
			return "", err
		}
		if name == "" {
			name = stored
		}
	}
	if name == "" {
		return "", fmt.Errorf("%w: patient_name is required", ErrInvalidInput)
	}
	return name, nil
}

// Create stores a new pending prescription. The controlled flag comes from
// the drug catalog, never from the caller.
func (s *Service) Create(ctx context.Context, req CreateRequest, prescriber string) (*Prescription, error) {
	if strings.TrimSpace(req.Medication) == "" {
		return nil, fmt.Errorf("%w: medication is required", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.Refills < 0 {
		return nil, fmt.Errorf("%w: refills must not be negative", ErrInvalidInput)
	}
	patientName, err := s.patientName(ctx, req)
	if err != nil {
		return nil, err
	}
	pharmacy, err := s.pharmacyName(req.Pharmacy)
	if err != nil {
		return nil, err
	}

	p := &Prescription{
		PatientID:    req.PatientID,
		PatientName:  patientName,
		Medication:   strings.TrimSpace(req.Medication),
		Strength:     req.Strength,
		Quantity:     req.Quantity,
		Refills:      req.Refills,
		Sig:          strings.TrimSpace(req.Sig),
		Pharmacy:     pharmacy,
		Status:       StatusPending,
		PrescribedBy: prescriber,
	}
	p.ScheduleClass = s.scheduleFor(ctx, p.Medication)
	p.IsControlled = p.ScheduleClass != ""

	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}
	return p, nil
}

// scheduleFor tries the full medication text, then its first word, so
// "Adderall 10mg" still resolves.
func (s *Service) scheduleFor(ctx context.Context, medication string) string {
	if s.schedules == nil {
		return ""
	}
	if sc := s.schedules.ScheduleFor(ctx, medication); sc != "" {
		return sc
	}
	if fields := strings.Fields(medication); len(fields) > 1 {
		return s.schedules.ScheduleFor(ctx, fields[0])
	}
	return ""
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, f, limit, offset)
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.transition(ctx, id, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.transition(ctx, id, StatusRejected)
}

func (s *Service) Dispense(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.transition(ctx, id, StatusDispensed)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to Status) (*Prescription, error) {
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(p.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.Status, to)
	}
	return s.prescriptions.UpdateStatus(ctx, id, p.Status, to)
}

// RequestRefill opens a pending refill request for a prescription that
// still has refills and was not rejected.
func (s *Service) RequestRefill(ctx context.Context, req RefillCreateRequest) (*RefillRequest, error) {
	rxID, err := uuid.Parse(req.PrescriptionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid prescription_id: %v", ErrInvalidInput, err)
	}
	p, err := s.prescriptions.GetByID(ctx, rxID)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusRejected || p.Status == StatusPending {
		return nil, fmt.Errorf("%w: cannot refill a %s prescription", ErrInvalidTransition, p.Status)
	}
	if p.Refills <= 0 {
		return nil, ErrNoRefills
	}

	rr := &RefillRequest{
		PrescriptionID:   p.ID,
		PatientName:      p.PatientName,
		Medication:       p.Medication,
		LastFillDate:     req.LastFillDate,
		RemainingRefills: p.Refills,
		Pharmacy:         p.Pharmacy,
		Status:           RefillPending,
	}
	if strings.TrimSpace(req.Pharmacy) != "" {
		if rr.Pharmacy, err = s.pharmacyName(req.Pharmacy); err != nil {
			return nil, err
		}
	}
	if rr.LastFillDate == nil && p.Status == StatusDispensed {
		last := p.UpdatedAt
		rr.LastFillDate = &last
	}
	if err := s.refills.Create(ctx, rr); err != nil {
		return nil, fmt.Errorf("create refill request: %w", err)
	}
	return rr, nil
}

func (s *Service) GetRefill(ctx context.Context, id uuid.UUID) (*RefillRequest, error) {
	return s.refills.GetByID(ctx, id)
}

func (s *Service) ListRefills(ctx context.Context, status RefillStatus, limit, offset int) ([]*RefillRequest, int, error) {
	return s.refills.List(ctx, status, limit, offset)
}

// ApproveRefill uses one of the prescription's refills and records the
// remaining count on the request, atomically.
func (s *Service) ApproveRefill(ctx context.Context, id uuid.UUID) (*RefillRequest, error) {
	var out *RefillRequest
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		rr, err := s.refills.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rr.Status != RefillPending {
			return fmt.Errorf("%w: refill already %s", ErrInvalidTransition, rr.Status)
		}
		p, err := s.prescriptions.DecrementRefills(ctx, rr.PrescriptionID)
		if err != nil {
			return err
		}
		out, err = s.refills.Decide(ctx, id, RefillApproved, p.Refills)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DenyRefill closes a pending request without touching the prescription.
func (s *Service) DenyRefill(ctx context.Context, id uuid.UUID) (*RefillRequest, error) {
	var out *RefillRequest
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		rr, err := s.refills.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rr.Status != RefillPending {
			return fmt.Errorf("%w: refill already %s", ErrInvalidTransition, rr.Status)
		}
		out, err = s.refills.Decide(ctx, id, RefillDenied, rr.RemainingRefills)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summary reports prescription counts by status, controlled prescriptions
// and the pending refill queue.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	byStatus, controlled, err := s.prescriptions.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("prescription stats: %w", err)
	}
	pending, err := s.refills.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("refill stats: %w", err)
	}

	sum := &Summary{ByStatus: make(map[Status]int), Controlled: controlled, PendingRefills: pending}
	for _, st := range []Status{StatusPending, StatusApproved, StatusRejected, StatusDispensed} {
		sum.ByStatus[st] = byStatus[st]
		sum.Total += byStatus[st]
	}
	return sum, nil
}

// Seed loads the demonstration prescriptions and their refill requests.
func (s *Service) Seed(ctx context.Context) error {
	for _, p := range demoPrescriptions() {
		p := p
		if err := s.prescriptions.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed prescription %s: %w", p.Medication, err)
		}
	}
	for _, rr := range demoRefills() {
		rr := rr
		if err := s.refills.Create(ctx, &rr); err != nil {
			return fmt.Errorf("seed refill %s: %w", rr.Medication, err)
		}
	}
	return nil
}

func demoDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t.UTC()
}
