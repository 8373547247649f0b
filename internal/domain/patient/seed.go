package patient

import (
	"context"
	"fmt"
	"time"
)

const demoPrescriber = "Dr. Sarah Johnson"

func demoDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(fmt.Sprintf("bad demo date %q: %v", s, err))
	}
	return t
}

func cond(id, name, code, date string) Condition {
	return Condition{ID: id, Name: name, ICD10Code: code, DiagnosedDate: date}
}

func med(id, name, generic, strength, form, sig string, qty, refills int, date, pharmacy, ndc, schedule string) Medication {
	return Medication{
		ID: id, Name: name, GenericName: generic, Strength: strength, DosageForm: form, Sig: sig,
		Quantity: qty, Refills: refills, PrescribedDate: date, PrescribedBy: demoPrescriber,
		Pharmacy: pharmacy, NDC: ndc, ScheduleClass: schedule,
	}
}

func demoPatients() []Patient {
	return []Patient{
		{
			ID: "P001", Name: "Omkar Katale", DOB: demoDate("1995-03-15"),
			Allergies: []string{"Penicillin", "Sulfa drugs"}, Insurance: "Blue Cross Blue Shield", MedicareID: "MC1234567A",
			Conditions: []Condition{
				cond("C1", "Type 2 Diabetes", "E11.9", "2020-01-15"),
				cond("C2", "Hypertension", "I10", "2018-06-22"),
			},
			Medications: []Medication{
				med("M1", "Metformin", "Metformin HCl", "500mg", "Tablet", "Take 1 tablet by mouth twice daily with meals", 60, 5, "2025-12-01", "CVS Pharmacy", "00093-7214-01", ""),
				med("M2", "Lisinopril", "Lisinopril", "10mg", "Tablet", "Take 1 tablet by mouth once daily", 30, 11, "2025-12-01", "CVS Pharmacy", "68180-0513-01", ""),
			},
		},
		{
			ID: "P002", Name: "Priya Deshmukh", DOB: demoDate("1978-07-22"),
			Allergies: []string{}, Insurance: "Aetna",
			Conditions: []Condition{cond("C3", "Asthma", "J45.909", "2015-03-10")},
			Medications: []Medication{
				med("M3", "Albuterol", "Albuterol Sulfate", "90mcg", "Inhaler", "Inhale 2 puffs every 4-6 hours as needed", 1, 3, "2026-01-10", "Walgreens", "00173-0682-20", ""),
			},
		},
		{
			ID: "P003", Name: "Rahul Patil", DOB: demoDate("1990-11-08"),
			Allergies: []string{"Codeine"}, Insurance: "UnitedHealthcare", MedicaidID: "MC9876543B",
			Conditions:  []Condition{cond("C4", "Chronic Back Pain", "M54.5", "2023-05-15")},
			Medications: []Medication{},
		},
		{
			ID: "P004", Name: "Sneha Kulkarni", DOB: demoDate("1992-05-18"),
			Allergies: []string{"Latex"}, Insurance: "Cigna",
			Conditions: []Condition{cond("C5", "Hypothyroidism", "E03.9", "2019-08-12")},
			Medications: []Medication{
				med("M4", "Levothyroxine", "Levothyroxine Sodium", "75mcg", "Tablet", "Take 1 tablet by mouth once daily on empty stomach", 90, 11, "2025-11-15", "CVS Pharmacy", "00093-4941-98", ""),
			},
		},
		{
			ID: "P005", Name: "Anil Joshi", DOB: demoDate("1958-12-03"),
			Allergies: []string{"Aspirin", "NSAIDs"}, Insurance: "Medicare", MedicareID: "MC7654321C",
			Conditions: []Condition{
				cond("C6", "Atrial Fibrillation", "I48.91", "2021-03-20"),
				cond("C7", "Coronary Artery Disease", "I25.10", "2019-11-05"),
			},
			Medications: []Medication{
				med("M5", "Warfarin", "Warfarin Sodium", "5mg", "Tablet", "Take 1 tablet by mouth once daily as directed", 30, 5, "2026-01-05", "Walgreens", "00093-0149-01", ""),
			},
		},
		{
			ID: "P006", Name: "Ananya Pawar", DOB: demoDate("2010-09-14"),
			Allergies: []string{}, Insurance: "Blue Cross Blue Shield",
			Conditions: []Condition{cond("C8", "ADHD", "F90.2", "2018-04-10")},
			Medications: []Medication{
				med("M6", "Adderall", "Amphetamine/Dextroamphetamine", "10mg", "Tablet", "Take 1 tablet by mouth once daily in the morning", 30, 0, "2026-01-20", "CVS Pharmacy", "00555-0768-02", "Schedule II"),
			},
		},
		{
			ID: "P007", Name: "Vikram Shinde", DOB: demoDate("1975-07-28"),
			Allergies: []string{"Shellfish"}, Insurance: "Aetna",
			Conditions: []Condition{
				cond("C9", "Depression", "F32.9", "2022-01-15"),
				cond("C10", "Anxiety Disorder", "F41.9", "2022-01-15"),
			},
			Medications: []Medication{
				med("M7", "Sertraline", "Sertraline HCl", "50mg", "Tablet", "Take 1 tablet by mouth once daily", 30, 5, "2026-01-08", "Rite Aid", "00093-7146-01", ""),
			},
		},
		{
			ID: "P008", Name: "Pooja Bhosale", DOB: demoDate("1988-11-22"),
			Allergies: []string{"Morphine"}, Insurance: "UnitedHealthcare",
			Conditions: []Condition{cond("C11", "Migraine", "G43.909", "2020-06-18")},
			Medications: []Medication{
				med("M8", "Sumatriptan", "Sumatriptan Succinate", "100mg", "Tablet", "Take 1 tablet at onset of migraine, may repeat once after 2 hours", 9, 3, "2025-12-20", "Walgreens", "00093-5142-56", ""),
			},
		},
		{
			ID: "P009", Name: "Suresh Kadam", DOB: demoDate("1952-04-09"),
			Allergies: []string{"Penicillin"}, Insurance: "Medicare", MedicareID: "MC5432109D",
			Conditions: []Condition{
				cond("C12", "COPD", "J44.9", "2018-09-25"),
				cond("C13", "Type 2 Diabetes", "E11.9", "2015-03-12"),
			},
			Medications: []Medication{
				med("M9", "Spiriva", "Tiotropium Bromide", "18mcg", "Inhaler", "Inhale 2 puffs once daily", 1, 5, "2025-11-30", "CVS Pharmacy", "00597-0075-41", ""),
			},
		},
		{
			ID: "P010", Name: "Sunita Jadhav", DOB: demoDate("1968-08-17"),
			Allergies: []string{}, Insurance: "Cigna",
			Conditions: []Condition{cond("C14", "Osteoarthritis", "M19.90", "2021-05-20")},
			Medications: []Medication{
				med("M10", "Meloxicam", "Meloxicam", "15mg", "Tablet", "Take 1 tablet by mouth once daily with food", 30, 5, "2026-01-12", "Community Pharmacy", "00093-7355-01", ""),
			},
		},
		{
			ID: "P011", Name: "Rohan Sawant", DOB: demoDate("1995-02-28"),
			Allergies: []string{"Sulfa drugs"}, Insurance: "Blue Cross Blue Shield",
			Conditions: []Condition{cond("C15", "Bacterial Sinusitis", "J01.90", "2026-02-10")},
			Medications: []Medication{
				med("M11", "Azithromycin", "Azithromycin", "250mg", "Tablet", "Take 2 tablets on day 1, then 1 tablet daily for 4 days", 6, 0, "2026-02-10", "Walgreens", "00093-7146-12", ""),
			},
		},
		{
			ID: "P012", Name: "Kavita Deshpande", DOB: demoDate("1983-06-05"),
			Allergies: []string{"Iodine"}, Insurance: "Aetna",
			Conditions: []Condition{cond("C16", "Hyperlipidemia", "E78.5", "2023-07-14")},
			Medications: []Medication{
				med("M12", "Rosuvastatin", "Rosuvastatin Calcium", "20mg", "Tablet", "Take 1 tablet by mouth once daily at bedtime", 30, 11, "2026-01-18", "CVS Pharmacy", "00093-7663-98", ""),
			},
		},
		{
			ID: "P013", Name: "Santosh Gaikwad", DOB: demoDate("1960-10-12"),
			Allergies: []string{"Codeine", "Morphine"}, Insurance: "Medicare", MedicareID: "MC9876543E",
			Conditions: []Condition{cond("C17", "Benign Prostatic Hyperplasia", "N40.0", "2022-04-08")},
			Medications: []Medication{
				med("M13", "Tamsulosin", "Tamsulosin HCl", "0.4mg", "Capsule", "Take 1 capsule by mouth once daily 30 minutes after same meal", 30, 5, "2026-01-22", "Rite Aid", "00093-7501-01", ""),
			},
		},
		{
			ID: "P014", Name: "Manisha Chavan", DOB: demoDate("1972-03-30"),
			Allergies: []string{}, Insurance: "UnitedHealthcare",
			Conditions: []Condition{cond("C18", "Insomnia", "G47.00", "2024-11-20")},
			Medications: []Medication{
				med("M14", "Zolpidem", "Zolpidem Tartrate", "10mg", "Tablet", "Take 1 tablet by mouth at bedtime as needed", 30, 2, "2026-01-25", "Walgreens", "00093-5335-56", "Schedule IV"),
			},
		},
		{
			ID: "P015", Name: "Amit Kale", DOB: demoDate("1998-12-15"),
			Allergies: []string{"Latex", "Penicillin"}, Insurance: "Cigna",
			Conditions: []Condition{cond("C19", "Seasonal Allergies", "J30.2", "2024-04-15")},
			Medications: []Medication{
				med("M15", "Cetirizine", "Cetirizine HCl", "10mg", "Tablet", "Take 1 tablet by mouth once daily", 90, 3, "2026-01-28", "Community Pharmacy", "00093-1044-01", ""),
			},
		},
	}
}

// Seed loads the demo patients.
func (s *Service) Seed(ctx context.Context) error {
	for _, p := range demoPatients() {
		if err := s.repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.ID, err)
		}
	}
	return nil
}
