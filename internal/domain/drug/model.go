package drug

import "strings"

// Drug is a formulary entry from the static drug catalog.
type Drug struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	GenericName   string   `json:"generic_name"`
	BrandName     string   `json:"brand_name"`
	Strengths     []string `json:"strengths" validate:"min=1"`
	DosageForms   []string `json:"dosage_forms"`
	NDC           string   `json:"ndc" validate:"required,ndc"`
	ScheduleClass string   `json:"schedule_class,omitempty"`
	IsGeneric     bool     `json:"is_generic"`
}

// IsControlled reports whether the drug carries a DEA schedule.
func (d *Drug) IsControlled() bool {
	return d.ScheduleClass != ""
}

// DefaultStrength returns the first listed strength, or fallback when the
// drug lists none.
func (d *Drug) DefaultStrength(fallback string) string {
	if len(d.Strengths) == 0 {
		return fallback
	}
	return d.Strengths[0]
}

// matches reports whether q is a case-insensitive substring of the generic
// name or the name. q must already be lower-cased.
func (d *Drug) matches(q string) bool {
	return strings.Contains(strings.ToLower(d.GenericName), q) ||
		strings.Contains(strings.ToLower(d.Name), q)
}

func (d *Drug) clone() *Drug {
	out := *d
	out.Strengths = append([]string(nil), d.Strengths...)
	out.DosageForms = append([]string(nil), d.DosageForms...)
	return &out
}
