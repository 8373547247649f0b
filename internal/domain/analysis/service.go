package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/erx/erx/internal/domain/diagnosis"
	"github.com/erx/erx/internal/domain/drug"
)

// DrugFinder resolves a medication name against the formulary.
type DrugFinder interface {
	FindByName(ctx context.Context, name string) (*drug.Drug, error)
}

// ErrUnknownPatient is returned when a patient_id has no record.
var ErrUnknownPatient = errors.New("unknown patient")

// PatientDirectory looks up the stored context of a patient.
// Implementations return ErrUnknownPatient for missing ids.
type PatientDirectory interface {
	PatientContext(ctx context.Context, id string) (Patient, error)
}

// Service turns consultation notes into a structured clinical analysis.
type Service struct {
	matcher     *diagnosis.Matcher
	drugs       DrugFinder
	transcriber Transcriber
	images      ImageAnalyzer
	cache       ResultCache
	patients    PatientDirectory
	delay       time.Duration
	logger      zerolog.Logger
}

func NewService(matcher *diagnosis.Matcher, drugs DrugFinder) *Service {
	return &Service{
		matcher:     matcher,
		drugs:       drugs,
		transcriber: StubTranscriber{},
		images:      StubImageAnalyzer{},
		cache:       NoopCache(),
		logger:      zerolog.Nop(),
	}
}

// SetCache attaches a result cache. A nil cache disables caching.
func (s *Service) SetCache(c ResultCache) {
	if c == nil {
		c = NoopCache()
	}
	s.cache = c
}

// SetProducers replaces the audio and image note producers.
func (s *Service) SetProducers(t Transcriber, i ImageAnalyzer) {
	if t != nil {
		s.transcriber = t
	}
	if i != nil {
		s.images = i
	}
}

// SetPatients enables patient_id lookups.
func (s *Service) SetPatients(p PatientDirectory) {
	s.patients = p
}

// PatientFor merges a stored patient record with request-supplied context.
// A positive request age wins over the record; allergies are the union of both.
func (s *Service) PatientFor(ctx context.Context, patientID string, age int, allergies []string) (Patient, error) {
	patient := Patient{Age: age, Allergies: allergies}
	if patientID == "" {
		return patient, nil
	}
	if s.patients == nil {
		return Patient{}, fmt.Errorf("%w: %s", ErrUnknownPatient, patientID)
	}
	stored, err := s.patients.PatientContext(ctx, patientID)
	if err != nil {
		return Patient{}, err
	}
	if patient.Age <= 0 {
		patient.Age = stored.Age
	}
	patient.Allergies = mergeAllergies(stored.Allergies, allergies)
	return patient, nil
}

func mergeAllergies(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, a := range list {
			a = strings.TrimSpace(a)
			key := strings.ToLower(a)
			if a == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	return out
}

// SetDelay adds a simulated processing delay to each fresh analysis.
func (s *Service) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *Service) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Transcribe runs the configured transcriber.
func (s *Service) Transcribe(ctx context.Context, audioURL string) (string, error) {
	return s.transcriber.Transcribe(ctx, audioURL)
}

// DescribeImage runs the configured image analyzer.
func (s *Service) DescribeImage(ctx context.Context, imageURL string) (string, error) {
	return s.images.Analyze(ctx, imageURL)
}

// ResolveNotes returns a copy of notes where audio and image notes without
// content have been filled from their producers.
func (s *Service) ResolveNotes(ctx context.Context, notes []ConsultationNote) ([]ConsultationNote, error) {
	out := make([]ConsultationNote, len(notes))
	copy(out, notes)
	for i := range out {
		n := &out[i]
		if strings.TrimSpace(n.Content) != "" {
			continue
		}
		switch {
		case n.Type == NoteAudio && n.AudioURL != "":
			text, err := s.transcriber.Transcribe(ctx, n.AudioURL)
			if err != nil {
				return nil, fmt.Errorf("transcribe note %d: %w", i, err)
			}
			n.Content = text
		case n.Type == NoteImage && n.ImageURL != "":
			text, err := s.images.Analyze(ctx, n.ImageURL)
			if err != nil {
				return nil, fmt.Errorf("analyze image note %d: %w", i, err)
			}
			n.Content = text
		}
	}
	return out, nil
}

// Analyze runs the analysis pipeline without patient context.
func (s *Service) Analyze(ctx context.Context, notes []ConsultationNote) (*Result, error) {
	return s.AnalyzeFor(ctx, notes, Patient{})
}

// AnalyzeFor runs the analysis pipeline. Zero notes yield an empty result.
// The only errors are context cancellation and producer failures.
func (s *Service) AnalyzeFor(ctx context.Context, notes []ConsultationNote, patient Patient) (*Result, error) {
	if len(notes) == 0 {
		return emptyResult(), nil
	}
	resolved, err := s.ResolveNotes(ctx, notes)
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(resolved))
	for i, n := range resolved {
		contents[i] = n.Content
	}
	text := strings.Join(contents, " ")

	key := cacheKey(text, patient)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("analysis cache read failed")
	} else if ok {
		return cached, nil
	}

	result := s.build(ctx, text, patient)

	if err := sleep(ctx, s.delay); err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn().Err(err).Msg("analysis cache write failed")
	}
	return result, nil
}

// QuickGenerate analyzes a single chief complaint for a patient.
func (s *Service) QuickGenerate(ctx context.Context, complaint string, age int, allergies []string) (*Result, error) {
	note := ConsultationNote{Type: NoteText, Content: complaint, Timestamp: time.Now().UTC()}
	return s.AnalyzeFor(ctx, []ConsultationNote{note}, Patient{Age: age, Allergies: allergies})
}

func (s *Service) build(ctx context.Context, text string, patient Patient) *Result {
	lower := strings.ToLower(text)
	matches := s.matcher.Match(text)

	result := emptyResult()
	result.Symptoms = extractSymptoms(lower)
	result.ChiefComplaint = chiefComplaint(lower, result.Symptoms)

	for i, m := range matches {
		if i >= maxDiagnoses {
			break
		}
		result.SuggestedDiagnoses = append(result.SuggestedDiagnoses, SuggestedDiagnosis{
			Code:        m.Entry.Code,
			Description: m.Entry.Description,
			Confidence:  confidence(i),
		})
	}

	result.RecommendedMedications = s.recommend(ctx, matches, lower)
	result.ClinicalNotes = clinicalNotes(result.ChiefComplaint, result.Symptoms, result.SuggestedDiagnoses)
	result.Warnings = warningsFor(lower, result.RecommendedMedications, patient)
	return result
}

func confidence(rank int) int {
	c := 95 - 10*rank
	if c < 70 {
		return 70
	}
	return c
}

// recommend cross-references the leading medications of every match with
// the formulary. Priority follows the position among suggested names, so a
// first name missing from the formulary leaves no primary recommendation.
func (s *Service) recommend(ctx context.Context, matches []diagnosis.MatchResult, lower string) []Recommendation {
	var names []string
	seen := make(map[string]bool)
	for _, m := range matches {
		meds := m.Entry.CommonMedications
		if len(meds) > medsPerDiagnosis {
			meds = meds[:medsPerDiagnosis]
		}
		for _, med := range meds {
			if !seen[med] {
				seen[med] = true
				names = append(names, med)
			}
		}
	}

	topDiagnosis := ""
	if len(matches) > 0 {
		topDiagnosis = matches[0].Entry.Description
	}

	recs := []Recommendation{}
	for i, name := range names {
		d, err := s.drugs.FindByName(ctx, name)
		if err != nil {
			continue
		}
		priority := PriorityAlternative
		if i == 0 {
			priority = PriorityPrimary
		}
		recs = append(recs, Recommendation{
			Name:        d.Name,
			GenericName: d.GenericName,
			Strength:    d.DefaultStrength(fallbackStrength),
			Reasoning:   reasoningFor(d.GenericName, topDiagnosis),
			Priority:    priority,
		})
	}

	if len(recs) == 0 && strings.Contains(lower, "pain") {
		recs = append(recs, painFallback)
	}
	if len(recs) > maxRecommendation {
		recs = recs[:maxRecommendation]
	}
	return recs
}

func clinicalNotes(complaint string, symptoms []string, diagnoses []SuggestedDiagnosis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chief Complaint: %s\n\n", complaint)
	fmt.Fprintf(&b, "Presenting Symptoms: %s\n\n", strings.Join(symptoms, ", "))
	b.WriteString("AI-Assisted Diagnosis:\n")
	for i, dx := range diagnoses {
		fmt.Fprintf(&b, "%d. %s (%s) - %d%% confidence\n", i+1, dx.Description, dx.Code, dx.Confidence)
	}
	b.WriteString("\nAI Recommendation: Based on clinical presentation and evidence-based guidelines, ")
	b.WriteString("the suggested diagnoses and medication recommendations have been generated. ")
	b.WriteString("Please review and modify as clinically appropriate.")
	return b.String()
}
