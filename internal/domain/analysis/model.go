package analysis

import "time"

// NoteType identifies how a consultation note was captured.
type NoteType string

const (
	NoteText  NoteType = "text"
	NoteAudio NoteType = "audio"
	NoteImage NoteType = "image"
)

// Priority ranks a medication recommendation.
type Priority string

const (
	PriorityPrimary     Priority = "primary"
	PriorityAlternative Priority = "alternative"
)

// ConsultationNote is one piece of clinician input. Audio and image notes
// may arrive with empty Content; the service fills it from the URL.
type ConsultationNote struct {
	Type      NoteType  `json:"type" validate:"required,oneof=text audio image"`
	Content   string    `json:"content" validate:"max=20000"`
	Timestamp time.Time `json:"timestamp"`
	AudioURL  string    `json:"audio_url,omitempty" validate:"omitempty,url"`
	ImageURL  string    `json:"image_url,omitempty" validate:"omitempty,url"`
}

// SuggestedDiagnosis is a ranked diagnosis with a display confidence.
type SuggestedDiagnosis struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
}

// Recommendation is a medication proposed for the consultation.
type Recommendation struct {
	Name        string   `json:"name"`
	GenericName string   `json:"generic_name"`
	Strength    string   `json:"strength"`
	Reasoning   string   `json:"reasoning"`
	Priority    Priority `json:"priority"`
}

// Result is the full structured output of an analysis.
type Result struct {
	ChiefComplaint         string               `json:"chief_complaint"`
	Symptoms               []string             `json:"symptoms"`
	SuggestedDiagnoses     []SuggestedDiagnosis `json:"suggested_diagnoses"`
	RecommendedMedications []Recommendation     `json:"recommended_medications"`
	ClinicalNotes          string               `json:"clinical_notes"`
	Warnings               []string             `json:"warnings"`
}

func emptyResult() *Result {
	return &Result{
		Symptoms:               []string{},
		SuggestedDiagnoses:     []SuggestedDiagnosis{},
		RecommendedMedications: []Recommendation{},
		Warnings:               []string{},
	}
}

// Patient carries optional patient facts that refine warnings.
type Patient struct {
	Age       int      `json:"age"`
	Allergies []string `json:"allergies"`
}

// AnalyzeRequest is the body of POST /api/v1/analysis.
type AnalyzeRequest struct {
	Notes     []ConsultationNote `json:"notes" validate:"max=20,dive"`
	PatientID string             `json:"patient_id" validate:"omitempty,max=64"`
	Allergies []string           `json:"allergies" validate:"max=50,dive,max=100"`
	Age       int                `json:"age" validate:"gte=0,lte=150"`
}

// QuickRequest is the body of POST /api/v1/analysis/quick.
type QuickRequest struct {
	ChiefComplaint string   `json:"chief_complaint" validate:"required,notblank,max=2000"`
	PatientID      string   `json:"patient_id" validate:"omitempty,max=64"`
	Age            int      `json:"age" validate:"gte=0,lte=150"`
	Allergies      []string `json:"allergies" validate:"max=50,dive,max=100"`
}

// TranscribeRequest is the body of POST /api/v1/analysis/transcribe.
type TranscribeRequest struct {
	AudioURL string `json:"audio_url" validate:"required,url"`
}

// ImageRequest is the body of POST /api/v1/analysis/image.
type ImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// TextResponse carries text produced from audio or an image.
type TextResponse struct {
	Text string `json:"text"`
}
