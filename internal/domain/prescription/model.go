package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a prescription.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDispensed Status = "dispensed"
)

// RefillStatus is the decision state of a refill request.
type RefillStatus string

const (
	RefillPending  RefillStatus = "pending"
	RefillApproved RefillStatus = "approved"
	RefillDenied   RefillStatus = "denied"
)

type Prescription struct {
	ID            uuid.UUID `json:"id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Strength      string    `json:"strength"`
	Quantity      int       `json:"quantity"`
	Refills       int       `json:"refills"`
	Sig           string    `json:"sig"`
	Pharmacy      string    `json:"pharmacy"`
	Status        Status    `json:"status"`
	IsControlled  bool      `json:"is_controlled"`
	ScheduleClass string    `json:"schedule_class,omitempty"`
	PrescribedBy  string    `json:"prescribed_by,omitempty"`
	PrescribedAt  time.Time `json:"prescribed_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RefillRequest struct {
	ID               uuid.UUID    `json:"id"`
	PrescriptionID   uuid.UUID    `json:"prescription_id"`
	PatientName      string       `json:"patient_name"`
	Medication       string       `json:"medication"`
	LastFillDate     *time.Time   `json:"last_fill_date,omitempty"`
	RemainingRefills int          `json:"remaining_refills"`
	Pharmacy         string       `json:"pharmacy"`
	Status           RefillStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CreateRequest is the body of POST /api/v1/prescriptions.
type CreateRequest struct {
	PatientID   string `json:"patient_id" validate:"required,max=64"`
	PatientName string `json:"patient_name" validate:"omitempty,max=255"`
	Medication  string `json:"medication" validate:"required,notblank,max=255"`
	Strength    string `json:"strength" validate:"required,max=64"`
	Quantity    int    `json:"quantity" validate:"required,gt=0,lte=1000"`
	Refills     int    `json:"refills" validate:"gte=0,lte=11"`
	Sig         string `json:"sig" validate:"required,notblank,max=1000"`
	Pharmacy    string `json:"pharmacy" validate:"required,notblank,max=255"`
}

// RefillCreateRequest is the body of POST /api/v1/refills.
type RefillCreateRequest struct {
	PrescriptionID string     `json:"prescription_id" validate:"required,uuid"`
	LastFillDate   *time.Time `json:"last_fill_date"`
	Pharmacy       string     `json:"pharmacy" validate:"omitempty,max=255"`
}

// ListFilter narrows prescription listings. Zero values match everything.
type ListFilter struct {
	Status     Status
	PatientID  string
	Controlled *bool
}

func (f ListFilter) matches(p *Prescription) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.PatientID != "" && p.PatientID != f.PatientID {
		return false
	}
	if f.Controlled != nil && p.IsControlled != *f.Controlled {
		return false
	}
	return true
}

// Summary is the prescription activity report.
type Summary struct {
	Total          int            `json:"total"`
	ByStatus       map[Status]int `json:"by_status"`
	Controlled     int            `json:"controlled"`
	PendingRefills int            `json:"pending_refills"`
}

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusDispensed},
}

// CanTransition reports whether a prescription may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
