package diagnosis

// Entry is one ICD-10 catalog record with the keywords used for text
// matching and the medications commonly prescribed for it.
type Entry struct {
	Code              string   `json:"code" validate:"required,icd10"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	CommonMedications []string `json:"common_medications"`
	Keywords          []string `json:"keywords" validate:"min=1"`
}

// MatchResult pairs a catalog entry with the score it earned for a query.
type MatchResult struct {
	Entry Entry `json:"entry"`
	Score int   `json:"score"`
}

// MatchRequest is the body of POST /api/v1/diagnoses/match.
type MatchRequest struct {
	Text string `json:"text"`
}

// MatchResponse wraps ranked matches for a query.
type MatchResponse struct {
	Matches []MatchResult `json:"matches"`
	Total   int           `json:"total"`
}

type codeParam struct {
	Code string `validate:"icd10"`
}

// MedicationsRequest is the body of POST /api/v1/diagnoses/medications.
type MedicationsRequest struct {
	Codes []string `json:"codes" validate:"max=50,dive,max=16"`
}

// MedicationsResponse lists the medications suggested for a set of codes.
type MedicationsResponse struct {
	Medications []string `json:"medications"`
}

func (e Entry) clone() Entry {
	out := e
	out.CommonMedications = append([]string(nil), e.CommonMedications...)
	out.Keywords = append([]string(nil), e.Keywords...)
	return out
}
