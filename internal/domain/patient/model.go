package patient

import "time"

// Patient is a person prescriptions are written for. Age is derived from
// DOB whenever a patient is read.
type Patient struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	DOB         time.Time    `json:"dob"`
	Age         int          `json:"age"`
	Allergies   []string     `json:"allergies"`
	Insurance   string       `json:"insurance"`
	MedicareID  string       `json:"medicare_id,omitempty"`
	MedicaidID  string       `json:"medicaid_id,omitempty"`
	Conditions  []Condition  `json:"conditions"`
	Medications []Medication `json:"medications"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Condition struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ICD10Code     string `json:"icd10_code,omitempty"`
	DiagnosedDate string `json:"diagnosed_date"`
}

// Medication is an entry in a patient's medication history.
type Medication struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	GenericName    string `json:"generic_name"`
	Strength       string `json:"strength"`
	DosageForm     string `json:"dosage_form"`
	Sig            string `json:"sig"`
	Quantity       int    `json:"quantity"`
	Refills        int    `json:"refills"`
	PrescribedDate string `json:"prescribed_date"`
	PrescribedBy   string `json:"prescribed_by"`
	Pharmacy       string `json:"pharmacy"`
	NDC            string `json:"ndc,omitempty"`
	ScheduleClass  string `json:"schedule_class,omitempty"`
}

// AgeOn returns the patient's age in whole years at t.
func (p *Patient) AgeOn(t time.Time) int {
	if p.DOB.IsZero() {
		return 0
	}
	age := t.Year() - p.DOB.Year()
	if t.Month() < p.DOB.Month() || (t.Month() == p.DOB.Month() && t.Day() < p.DOB.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func (p *Patient) clone() *Patient {
	cp := *p
	cp.Allergies = append([]string{}, p.Allergies...)
	cp.Conditions = append([]Condition{}, p.Conditions...)
	cp.Medications = append([]Medication{}, p.Medications...)
	return &cp
}

// CreateRequest is the body of POST /api/v1/patients.
type CreateRequest struct {
	Name       string           `json:"name" validate:"required,notblank,max=255"`
	DOB        string           `json:"dob" validate:"required,datetime=2006-01-02"`
	Allergies  []string         `json:"allergies" validate:"max=50,dive,notblank,max=100"`
	Insurance  string           `json:"insurance" validate:"required,oneof='Blue Cross Blue Shield' Aetna UnitedHealthcare Cigna Medicare Medicaid"`
	MedicareID string           `json:"medicare_id" validate:"omitempty,max=32"`
	MedicaidID string           `json:"medicaid_id" validate:"omitempty,max=32"`
	Conditions []ConditionInput `json:"conditions" validate:"max=50,dive"`
}

type ConditionInput struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	ICD10Code string `json:"icd10_code" validate:"omitempty,icd10"`
}
