package analysis

import (
	"strings"
)

const (
	generalMalaise    = "General malaise"
	fallbackStrength  = "10mg"
	maxDiagnoses      = 3
	maxRecommendation = 4
	medsPerDiagnosis  = 2
)

var symptomVocabulary = []string{
	"cough", "fever", "pain", "headache", "nausea", "vomiting",
	"diarrhea", "fatigue", "weakness", "dizziness", "shortness of breath",
	"wheezing", "chest pain", "abdominal pain", "back pain", "sore throat",
	"congestion", "runny nose", "rash", "itching", "swelling",
	"insomnia", "anxiety", "depression", "palpitations", "sweating",
}

// extractSymptoms returns vocabulary terms found in lower, in vocabulary
// order, with the first letter capitalized.
func extractSymptoms(lower string) []string {
	var symptoms []string
	for _, term := range symptomVocabulary {
		if strings.Contains(lower, term) {
			symptoms = append(symptoms, strings.ToUpper(term[:1])+term[1:])
		}
	}
	if len(symptoms) == 0 {
		return []string{generalMalaise}
	}
	return symptoms
}

func containsAny(lower string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

type complaintRule struct {
	label string
	match func(lower string) bool
}

// complaintRules are evaluated in order; the first match wins.
var complaintRules = []complaintRule{
	{"Chest pain/discomfort", func(s string) bool {
		return strings.Contains(s, "chest") && containsAny(s, "pain", "discomfort")
	}},
	{"Back pain", func(s string) bool {
		return strings.Contains(s, "back") && strings.Contains(s, "pain")
	}},
	{"Respiratory symptoms", func(s string) bool { return containsAny(s, "cough", "respiratory") }},
	{"Mental health concerns", func(s string) bool { return containsAny(s, "anxiety", "depression") }},
}

func chiefComplaint(lower string, symptoms []string) string {
	for _, r := range complaintRules {
		if r.match(lower) {
			return r.label
		}
	}
	if len(symptoms) == 0 {
		return generalMalaise
	}
	return symptoms[0]
}

type reasoningRule struct {
	terms     []string
	reasoning string
}

var reasoningRules = []reasoningRule{
	{[]string{"metformin"}, "First-line therapy for Type 2 diabetes management"},
	{[]string{"lisinopril", "amlodipine"}, "Antihypertensive therapy to control blood pressure"},
	{[]string{"albuterol"}, "Bronchodilator for acute respiratory symptom relief"},
	{[]string{"sertraline", "escitalopram"}, "SSRI for anxiety and depression management"},
	{[]string{"omeprazole"}, "Proton pump inhibitor for acid reflux control"},
	{[]string{"amoxicillin"}, "Antibiotic therapy for bacterial infection"},
	{[]string{"atorvastatin"}, "Statin therapy for cholesterol management"},
}

// reasoningFor explains a recommendation keyed on its generic name, falling
// back to the top diagnosis.
func reasoningFor(genericName, topDiagnosis string) string {
	g := strings.ToLower(genericName)
	for _, r := range reasoningRules {
		if containsAny(g, r.terms...) {
			return r.reasoning
		}
	}
	return "Evidence-based treatment for " + topDiagnosis
}

// painFallback is recommended when nothing matched the formulary but the
// note mentions pain.
var painFallback = Recommendation{
	Name:        "Ibuprofen",
	GenericName: "Ibuprofen",
	Strength:    "400mg",
	Reasoning:   "NSAID for pain and inflammation management",
	Priority:    PriorityPrimary,
}

var (
	controlledSubstances = []string{"oxycodone", "hydrocodone", "tramadol", "alprazolam", "zolpidem"}
	antibiotics          = []string{"amoxicillin", "azithromycin", "ciprofloxacin"}
)

const (
	warnEPCS       = "Controlled substance detected - Additional EPCS verification required"
	warnPDMP       = "PDMP check recommended before prescribing"
	warnAntibiotic = "Antibiotic prescribed - Ensure bacterial infection confirmed"
	warnPregnancy  = "Patient may be pregnant - Review medication safety in pregnancy"
	warnElderly    = "Elderly patient - Consider dose adjustments and drug interactions"
	elderlyAge     = 65
)

func anyGenericContains(recs []Recommendation, terms []string) bool {
	for _, r := range recs {
		if containsAny(strings.ToLower(r.GenericName), terms...) {
			return true
		}
	}
	return false
}

func warningsFor(lower string, recs []Recommendation, patient Patient) []string {
	warnings := []string{}
	if anyGenericContains(recs, controlledSubstances) {
		warnings = append(warnings, warnEPCS, warnPDMP)
	}
	if anyGenericContains(recs, antibiotics) {
		warnings = append(warnings, warnAntibiotic)
	}
	if containsAny(lower, "pregnant", "pregnancy") {
		warnings = append(warnings, warnPregnancy)
	}
	if containsAny(lower, "elderly", "age 65", "geriatric") || patient.Age >= elderlyAge {
		warnings = append(warnings, warnElderly)
	}
	return append(warnings, allergyWarnings(recs, patient.Allergies)...)
}

func allergyWarnings(recs []Recommendation, allergies []string) []string {
	var out []string
	for _, r := range recs {
		name := strings.ToLower(r.Name)
		generic := strings.ToLower(r.GenericName)
		for _, a := range allergies {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if strings.Contains(name, a) || strings.Contains(generic, a) {
				out = append(out, "Allergy alert - "+r.Name+" conflicts with documented allergy to "+a)
				break
			}
		}
	}
	return out
}
