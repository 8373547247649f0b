package prescription

import (
	"github.com/google/uuid"
)

// demoID derives a stable id from a demo record key.
func demoID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:erx:demo:"+key))
}

const demoPrescriber = "Dr. Priya Deshmukh"

func demoPrescriptions() []Prescription {
	rx := func(key, patientID, patient, med, strength string, qty, refills int, sig, pharmacy, date string, status Status, schedule string) Prescription {
		return Prescription{
			ID:            demoID(key),
			PatientID:     patientID,
			PatientName:   patient,
			Medication:    med,
			Strength:      strength,
			Quantity:      qty,
			Refills:       refills,
			Sig:           sig,
			Pharmacy:      pharmacy,
			Status:        status,
			IsControlled:  schedule != "",
			ScheduleClass: schedule,
			PrescribedBy:  demoPrescriber,
			PrescribedAt:  demoDate(date),
		}
	}
	return []Prescription{
		rx("RX001", "P001", "Omkar Katale", "Atorvastatin 20mg", "20mg", 30, 11, "Take 1 tablet by mouth once daily at bedtime", "CVS Pharmacy", "2026-02-13", StatusPending, ""),
		rx("RX002", "P002", "Priya Deshmukh", "Prednisone 10mg", "10mg", 21, 0, "Take as directed: 3 tablets daily for 3 days, then 2 tablets daily for 3 days, then 1 tablet daily for 3 days", "Walgreens", "2026-02-12", StatusDispensed, ""),
		rx("RX003", "P004", "Sneha Kulkarni", "Levothyroxine 75mcg", "75mcg", 90, 11, "Take 1 tablet by mouth once daily on empty stomach", "CVS Pharmacy", "2026-02-11", StatusApproved, ""),
		rx("RX004", "P006", "Ananya Pawar", "Adderall 10mg", "10mg", 30, 0, "Take 1 tablet by mouth once daily in the morning", "CVS Pharmacy", "2026-02-14", StatusPending, "Schedule II"),
		rx("RX005", "P007", "Vikram Shinde", "Sertraline 50mg", "50mg", 30, 5, "Take 1 tablet by mouth once daily", "Rite Aid", "2026-02-10", StatusDispensed, ""),
		rx("RX006", "P011", "Rohan Sawant", "Azithromycin 250mg", "250mg", 6, 0, "Take 2 tablets on day 1, then 1 tablet daily for 4 days", "Walgreens", "2026-02-10", StatusDispensed, ""),
		rx("RX007", "P012", "Kavita Deshpande", "Rosuvastatin 20mg", "20mg", 30, 11, "Take 1 tablet by mouth once daily at bedtime", "CVS Pharmacy", "2026-02-09", StatusApproved, ""),
		rx("RX008", "P014", "Manisha Chavan", "Zolpidem 10mg", "10mg", 30, 2, "Take 1 tablet by mouth at bedtime as needed", "Walgreens", "2026-02-08", StatusDispensed, "Schedule IV"),
		rx("RX009", "P005", "Anil Joshi", "Warfarin 5mg", "5mg", 30, 5, "Take 1 tablet by mouth once daily as directed", "Walgreens", "2026-02-07", StatusApproved, ""),
		rx("RX010", "P010", "Sunita Jadhav", "Meloxicam 15mg", "15mg", 30, 5, "Take 1 tablet by mouth once daily with food", "Community Pharmacy", "2026-02-06", StatusDispensed, ""),
	}
}

// demoRefills are pending requests against the demo prescriptions that
// still carry refills.
func demoRefills() []RefillRequest {
	rf := func(key, rxKey, patient, med, lastFill string, remaining int, pharmacy string) RefillRequest {
		last := demoDate(lastFill)
		return RefillRequest{
			ID:               demoID(key),
			PrescriptionID:   demoID(rxKey),
			PatientName:      patient,
			Medication:       med,
			LastFillDate:     &last,
			RemainingRefills: remaining,
			Pharmacy:         pharmacy,
			Status:           RefillPending,
			CreatedAt:        last,
		}
	}
	return []RefillRequest{
		rf("RF004", "RX003", "Sneha Kulkarni", "Levothyroxine 75mcg", "2025-11-15", 11, "CVS Pharmacy"),
		rf("RF005", "RX009", "Anil Joshi", "Warfarin 5mg", "2026-01-05", 5, "Walgreens"),
		rf("RF006", "RX005", "Vikram Shinde", "Sertraline 50mg", "2026-01-08", 5, "Rite Aid"),
		rf("RF009", "RX010", "Sunita Jadhav", "Meloxicam 15mg", "2026-01-12", 5, "Community Pharmacy"),
		rf("RF010", "RX007", "Kavita Deshpande", "Rosuvastatin 20mg", "2026-01-18", 11, "CVS Pharmacy"),
	}
}
