package pharmacy

import "strings"

// Pharmacy is a dispensing location prescriptions can be routed to.
type Pharmacy struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Fax      string `json:"fax"`
	Distance string `json:"distance"`
}

// Chain is the name without the store number, e.g. "CVS Pharmacy" for
// "CVS Pharmacy #1234".
func (p *Pharmacy) Chain() string {
	if i := strings.Index(p.Name, " #"); i > 0 {
		return p.Name[:i]
	}
	return p.Name
}
