package drug

// formulary is the compiled-in drug table, in catalog order.
var formulary = []Drug{
	{
		ID:          "D001",
		Name:        "Atorvastatin",
		GenericName: "Atorvastatin Calcium",
		BrandName:   "Lipitor",
		Strengths:   []string{"10mg", "20mg", "40mg", "80mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00071-0155-23",
		IsGeneric:   true,
	},
	{
		ID:          "D002",
		Name:        "Lisinopril",
		GenericName: "Lisinopril",
		BrandName:   "Prinivil",
		Strengths:   []string{"2.5mg", "5mg", "10mg", "20mg", "40mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "68180-0513-01",
		IsGeneric:   true,
	},
	{
		ID:          "D003",
		Name:        "Metformin",
		GenericName: "Metformin HCl",
		BrandName:   "Glucophage",
		Strengths:   []string{"500mg", "850mg", "1000mg"},
		DosageForms: []string{"Tablet", "Extended Release Tablet"},
		NDC:         "00093-7214-01",
		IsGeneric:   true,
	},
	{
		ID:            "D004",
		Name:          "Oxycodone",
		GenericName:   "Oxycodone HCl",
		BrandName:     "OxyContin",
		Strengths:     []string{"5mg", "10mg", "15mg", "20mg", "30mg"},
		DosageForms:   []string{"Tablet", "Extended Release Tablet"},
		NDC:           "00406-0505-01",
		ScheduleClass: "Schedule II",
		IsGeneric:     true,
	},
	{
		ID:          "D005",
		Name:        "Amoxicillin",
		GenericName: "Amoxicillin",
		BrandName:   "Amoxil",
		Strengths:   []string{"250mg", "500mg", "875mg"},
		DosageForms: []string{"Capsule", "Tablet", "Suspension"},
		NDC:         "00093-4147-73",
		IsGeneric:   true,
	},
	{
		ID:            "D006",
		Name:          "Alprazolam",
		GenericName:   "Alprazolam",
		BrandName:     "Xanax",
		Strengths:     []string{"0.25mg", "0.5mg", "1mg", "2mg"},
		DosageForms:   []string{"Tablet"},
		NDC:           "00093-0094-01",
		ScheduleClass: "Schedule IV",
		IsGeneric:     true,
	},
	{
		ID:          "D007",
		Name:        "Levothyroxine",
		GenericName: "Levothyroxine Sodium",
		BrandName:   "Synthroid",
		Strengths:   []string{"25mcg", "50mcg", "75mcg", "100mcg", "125mcg", "150mcg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-4941-98",
		IsGeneric:   true,
	},
	{
		ID:          "D008",
		Name:        "Albuterol",
		GenericName: "Albuterol Sulfate",
		BrandName:   "ProAir HFA",
		Strengths:   []string{"90mcg"},
		DosageForms: []string{"Inhaler"},
		NDC:         "00173-0682-20",
		IsGeneric:   false,
	},
	{
		ID:          "D009",
		Name:        "Sertraline",
		GenericName: "Sertraline HCl",
		BrandName:   "Zoloft",
		Strengths:   []string{"25mg", "50mg", "100mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7146-01",
		IsGeneric:   true,
	},
	{
		ID:          "D010",
		Name:        "Omeprazole",
		GenericName: "Omeprazole",
		BrandName:   "Prilosec",
		Strengths:   []string{"10mg", "20mg", "40mg"},
		DosageForms: []string{"Capsule"},
		NDC:         "00093-7347-56",
		IsGeneric:   true,
	},
	{
		ID:          "D011",
		Name:        "Amlodipine",
		GenericName: "Amlodipine Besylate",
		BrandName:   "Norvasc",
		Strengths:   []string{"2.5mg", "5mg", "10mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7369-56",
		IsGeneric:   true,
	},
	{
		ID:          "D012",
		Name:        "Gabapentin",
		GenericName: "Gabapentin",
		BrandName:   "Neurontin",
		Strengths:   []string{"100mg", "300mg", "400mg", "600mg", "800mg"},
		DosageForms: []string{"Capsule", "Tablet"},
		NDC:         "00093-0136-01",
		IsGeneric:   true,
	},
	{
		ID:          "D013",
		Name:        "Hydrochlorothiazide",
		GenericName: "Hydrochlorothiazide",
		BrandName:   "Microzide",
		Strengths:   []string{"12.5mg", "25mg", "50mg"},
		DosageForms: []string{"Capsule", "Tablet"},
		NDC:         "00093-1074-01",
		IsGeneric:   true,
	},
	{
		ID:          "D014",
		Name:        "Losartan",
		GenericName: "Losartan Potassium",
		BrandName:   "Cozaar",
		Strengths:   []string{"25mg", "50mg", "100mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7365-56",
		IsGeneric:   true,
	},
	{
		ID:          "D015",
		Name:        "Warfarin",
		GenericName: "Warfarin Sodium",
		BrandName:   "Coumadin",
		Strengths:   []string{"1mg", "2mg", "2.5mg", "3mg", "4mg", "5mg", "6mg", "7.5mg", "10mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-0149-01",
		IsGeneric:   true,
	},
	{
		ID:          "D016",
		Name:        "Prednisone",
		GenericName: "Prednisone",
		BrandName:   "Deltasone",
		Strengths:   []string{"5mg", "10mg", "20mg", "50mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-0147-01",
		IsGeneric:   true,
	},
	{
		ID:          "D017",
		Name:        "Azithromycin",
		GenericName: "Azithromycin",
		BrandName:   "Zithromax",
		Strengths:   []string{"250mg", "500mg"},
		DosageForms: []string{"Tablet", "Suspension"},
		NDC:         "00093-7146-12",
		IsGeneric:   true,
	},
	{
		ID:          "D018",
		Name:        "Rosuvastatin",
		GenericName: "Rosuvastatin Calcium",
		BrandName:   "Crestor",
		Strengths:   []string{"5mg", "10mg", "20mg", "40mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7663-98",
		IsGeneric:   true,
	},
	{
		ID:          "D019",
		Name:        "Montelukast",
		GenericName: "Montelukast Sodium",
		BrandName:   "Singulair",
		Strengths:   []string{"4mg", "5mg", "10mg"},
		DosageForms: []string{"Tablet", "Chewable Tablet"},
		NDC:         "00093-7355-56",
		IsGeneric:   true,
	},
	{
		ID:          "D020",
		Name:        "Escitalopram",
		GenericName: "Escitalopram Oxalate",
		BrandName:   "Lexapro",
		Strengths:   []string{"5mg", "10mg", "20mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7540-56",
		IsGeneric:   true,
	},
	{
		ID:            "D021",
		Name:          "Adderall",
		GenericName:   "Amphetamine/Dextroamphetamine",
		BrandName:     "Adderall",
		Strengths:     []string{"5mg", "10mg", "15mg", "20mg", "30mg"},
		DosageForms:   []string{"Tablet"},
		NDC:           "00555-0768-02",
		ScheduleClass: "Schedule II",
		IsGeneric:     false,
	},
	{
		ID:          "D022",
		Name:        "Sumatriptan",
		GenericName: "Sumatriptan Succinate",
		BrandName:   "Imitrex",
		Strengths:   []string{"25mg", "50mg", "100mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-5142-56",
		IsGeneric:   true,
	},
	{
		ID:          "D023",
		Name:        "Meloxicam",
		GenericName: "Meloxicam",
		BrandName:   "Mobic",
		Strengths:   []string{"7.5mg", "15mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7355-01",
		IsGeneric:   true,
	},
	{
		ID:          "D024",
		Name:        "Tamsulosin",
		GenericName: "Tamsulosin HCl",
		BrandName:   "Flomax",
		Strengths:   []string{"0.4mg"},
		DosageForms: []string{"Capsule"},
		NDC:         "00093-7501-01",
		IsGeneric:   true,
	},
	{
		ID:            "D025",
		Name:          "Zolpidem",
		GenericName:   "Zolpidem Tartrate",
		BrandName:     "Ambien",
		Strengths:     []string{"5mg", "10mg"},
		DosageForms:   []string{"Tablet"},
		NDC:           "00093-5335-56",
		ScheduleClass: "Schedule IV",
		IsGeneric:     true,
	},
	{
		ID:          "D026",
		Name:        "Cetirizine",
		GenericName: "Cetirizine HCl",
		BrandName:   "Zyrtec",
		Strengths:   []string{"5mg", "10mg"},
		DosageForms: []string{"Tablet", "Chewable Tablet", "Syrup"},
		NDC:         "00093-1044-01",
		IsGeneric:   true,
	},
	{
		ID:          "D027",
		Name:        "Spiriva",
		GenericName: "Tiotropium Bromide",
		BrandName:   "Spiriva",
		Strengths:   []string{"18mcg"},
		DosageForms: []string{"Inhaler"},
		NDC:         "00597-0075-41",
		IsGeneric:   false,
	},
	{
		ID:          "D028",
		Name:        "Furosemide",
		GenericName: "Furosemide",
		BrandName:   "Lasix",
		Strengths:   []string{"20mg", "40mg", "80mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-0064-01",
		IsGeneric:   true,
	},
	{
		ID:          "D029",
		Name:        "Pantoprazole",
		GenericName: "Pantoprazole Sodium",
		BrandName:   "Protonix",
		Strengths:   []string{"20mg", "40mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7347-73",
		IsGeneric:   true,
	},
	{
		ID:          "D030",
		Name:        "Clopidogrel",
		GenericName: "Clopidogrel Bisulfate",
		BrandName:   "Plavix",
		Strengths:   []string{"75mg"},
		DosageForms: []string{"Tablet"},
		NDC:         "00093-7298-56",
		IsGeneric:   true,
	},
}
