package diagnosis

// Category names used by the catalog.
const (
	CategoryEndocrine        = "Endocrine"
	CategoryCardiovascular   = "Cardiovascular"
	CategoryRespiratory      = "Respiratory"
	CategoryMusculoskeletal  = "Musculoskeletal"
	CategoryMentalHealth     = "Mental Health"
	CategoryInfectious       = "Infectious"
	CategoryGastrointestinal = "Gastrointestinal"
	CategoryDermatological   = "Dermatological"
	CategoryNeurological     = "Neurological"
	CategoryAllergic         = "Allergic"
)

// catalog is the compiled-in ICD-10 table. Order matters: it breaks score ties.
var catalog = []Entry{
	{
		Code:              "E11.9",
		Description:       "Type 2 diabetes mellitus without complications",
		Category:          CategoryEndocrine,
		CommonMedications: []string{"Metformin", "Glipizide", "Insulin", "Januvia", "Jardiance", "Ozempic"},
		Keywords:          []string{"diabetes", "blood sugar", "glucose", "diabetic", "hyperglycemia", "insulin resistance"},
	},
	{
		Code:              "E11.65",
		Description:       "Type 2 diabetes mellitus with hyperglycemia",
		Category:          CategoryEndocrine,
		CommonMedications: []string{"Metformin", "Insulin", "Glipizide", "Januvia"},
		Keywords:          []string{"high blood sugar", "hyperglycemia", "diabetes", "glucose elevated"},
	},
	{
		Code:              "E10.9",
		Description:       "Type 1 diabetes mellitus without complications",
		Category:          CategoryEndocrine,
		CommonMedications: []string{"Insulin", "Humalog", "Lantus", "Novolog"},
		Keywords:          []string{"type 1 diabetes", "insulin dependent", "juvenile diabetes"},
	},
	{
		Code:              "I10",
		Description:       "Essential (primary) hypertension",
		Category:          CategoryCardiovascular,
		CommonMedications: []string{"Lisinopril", "Amlodipine", "Losartan", "Hydrochlorothiazide", "Metoprolol"},
		Keywords:          []string{"high blood pressure", "hypertension", "HTN", "elevated BP", "blood pressure"},
	},
	{
		Code:              "I11.0",
		Description:       "Hypertensive heart disease with heart failure",
		Category:          CategoryCardiovascular,
		CommonMedications: []string{"Lisinopril", "Carvedilol", "Furosemide", "Spironolactone"},
		Keywords:          []string{"hypertensive heart", "heart failure", "HTN with CHF"},
	},
	{
		Code:              "J45.909",
		Description:       "Unspecified asthma, uncomplicated",
		Category:          CategoryRespiratory,
		CommonMedications: []string{"Albuterol", "Fluticasone", "Montelukast", "Advair", "Symbicort"},
		Keywords:          []string{"asthma", "wheezing", "shortness of breath", "bronchospasm", "breathing difficulty"},
	},
	{
		Code:              "J20.9",
		Description:       "Acute bronchitis, unspecified",
		Category:          CategoryRespiratory,
		CommonMedications: []string{"Albuterol", "Prednisone", "Benzonatate", "Azithromycin"},
		Keywords:          []string{"bronchitis", "cough", "chest congestion", "acute cough"},
	},
	{
		Code:              "J44.1",
		Description:       "Chronic obstructive pulmonary disease with acute exacerbation",
		Category:          CategoryRespiratory,
		CommonMedications: []string{"Albuterol", "Spiriva", "Prednisone", "Azithromycin"},
		Keywords:          []string{"COPD", "emphysema", "chronic bronchitis", "smoking lung"},
	},
	{
		Code:              "M54.5",
		Description:       "Low back pain",
		Category:          CategoryMusculoskeletal,
		CommonMedications: []string{"Ibuprofen", "Cyclobenzaprine", "Meloxicam", "Gabapentin", "Tramadol"},
		Keywords:          []string{"back pain", "lumbar pain", "lower back", "backache"},
	},
	{
		Code:              "M25.561",
		Description:       "Pain in right knee",
		Category:          CategoryMusculoskeletal,
		CommonMedications: []string{"Ibuprofen", "Meloxicam", "Diclofenac", "Tramadol"},
		Keywords:          []string{"knee pain", "joint pain", "knee ache"},
	},
	{
		Code:              "M79.1",
		Description:       "Myalgia",
		Category:          CategoryMusculoskeletal,
		CommonMedications: []string{"Ibuprofen", "Acetaminophen", "Cyclobenzaprine", "Methocarbamol"},
		Keywords:          []string{"muscle pain", "myalgia", "muscle ache", "sore muscles"},
	},
	{
		Code:              "F41.1",
		Description:       "Generalized anxiety disorder",
		Category:          CategoryMentalHealth,
		CommonMedications: []string{"Sertraline", "Escitalopram", "Buspirone", "Alprazolam", "Duloxetine"},
		Keywords:          []string{"anxiety", "GAD", "worry", "anxious", "panic", "stress"},
	},
	{
		Code:              "F33.1",
		Description:       "Major depressive disorder, recurrent, moderate",
		Category:          CategoryMentalHealth,
		CommonMedications: []string{"Sertraline", "Escitalopram", "Bupropion", "Duloxetine", "Fluoxetine"},
		Keywords:          []string{"depression", "depressed", "major depression", "MDD", "low mood", "sadness"},
	},
	{
		Code:              "G47.00",
		Description:       "Insomnia, unspecified",
		Category:          CategoryMentalHealth,
		CommonMedications: []string{"Zolpidem", "Trazodone", "Melatonin", "Eszopiclone"},
		Keywords:          []string{"insomnia", "sleep disorder", "cannot sleep", "trouble sleeping"},
	},
	{
		Code:              "J02.9",
		Description:       "Acute pharyngitis, unspecified",
		Category:          CategoryInfectious,
		CommonMedications: []string{"Amoxicillin", "Azithromycin", "Penicillin", "Cephalexin"},
		Keywords:          []string{"sore throat", "pharyngitis", "throat infection", "strep throat"},
	},
	{
		Code:              "N39.0",
		Description:       "Urinary tract infection, site not specified",
		Category:          CategoryInfectious,
		CommonMedications: []string{"Nitrofurantoin", "Ciprofloxacin", "Bactrim", "Cephalexin"},
		Keywords:          []string{"UTI", "urinary infection", "bladder infection", "cystitis"},
	},
	{
		Code:              "H66.90",
		Description:       "Otitis media, unspecified, unspecified ear",
		Category:          CategoryInfectious,
		CommonMedications: []string{"Amoxicillin", "Azithromycin", "Cefdinir", "Augmentin"},
		Keywords:          []string{"ear infection", "otitis", "ear ache", "middle ear"},
	},
	{
		Code:              "K21.9",
		Description:       "Gastro-esophageal reflux disease without esophagitis",
		Category:          CategoryGastrointestinal,
		CommonMedications: []string{"Omeprazole", "Pantoprazole", "Famotidine", "Esomeprazole"},
		Keywords:          []string{"GERD", "acid reflux", "heartburn", "indigestion"},
	},
	{
		Code:              "K58.9",
		Description:       "Irritable bowel syndrome without diarrhea",
		Category:          CategoryGastrointestinal,
		CommonMedications: []string{"Dicyclomine", "Hyoscyamine", "Fiber supplements", "Linaclotide"},
		Keywords:          []string{"IBS", "irritable bowel", "abdominal pain", "bowel disorder"},
	},
	{
		Code:              "I25.10",
		Description:       "Atherosclerotic heart disease of native coronary artery without angina pectoris",
		Category:          CategoryCardiovascular,
		CommonMedications: []string{"Atorvastatin", "Aspirin", "Metoprolol", "Lisinopril"},
		Keywords:          []string{"coronary artery disease", "CAD", "atherosclerosis", "heart disease"},
	},
	{
		Code:              "E78.5",
		Description:       "Hyperlipidemia, unspecified",
		Category:          CategoryCardiovascular,
		CommonMedications: []string{"Atorvastatin", "Simvastatin", "Rosuvastatin", "Pravastatin"},
		Keywords:          []string{"high cholesterol", "hyperlipidemia", "dyslipidemia", "elevated lipids"},
	},
	{
		Code:              "L30.9",
		Description:       "Dermatitis, unspecified",
		Category:          CategoryDermatological,
		CommonMedications: []string{"Hydrocortisone", "Triamcinolone", "Betamethasone", "Cetirizine"},
		Keywords:          []string{"dermatitis", "skin rash", "eczema", "skin inflammation"},
	},
	{
		Code:              "L70.0",
		Description:       "Acne vulgaris",
		Category:          CategoryDermatological,
		CommonMedications: []string{"Benzoyl peroxide", "Tretinoin", "Doxycycline", "Adapalene"},
		Keywords:          []string{"acne", "pimples", "breakout", "facial acne"},
	},
	{
		Code:              "E03.9",
		Description:       "Hypothyroidism, unspecified",
		Category:          CategoryEndocrine,
		CommonMedications: []string{"Levothyroxine", "Synthroid", "Armour Thyroid"},
		Keywords:          []string{"hypothyroid", "low thyroid", "underactive thyroid", "thyroid disorder"},
	},
	{
		Code:              "G43.909",
		Description:       "Migraine, unspecified, not intractable, without status migrainosus",
		Category:          CategoryNeurological,
		CommonMedications: []string{"Sumatriptan", "Rizatriptan", "Propranolol", "Topiramate"},
		Keywords:          []string{"migraine", "severe headache", "headache", "migraine attack"},
	},
	{
		Code:              "R51.9",
		Description:       "Headache, unspecified",
		Category:          CategoryNeurological,
		CommonMedications: []string{"Ibuprofen", "Acetaminophen", "Sumatriptan"},
		Keywords:          []string{"headache", "head pain", "cephalalgia"},
	},
	{
		Code:              "J30.9",
		Description:       "Allergic rhinitis, unspecified",
		Category:          CategoryAllergic,
		CommonMedications: []string{"Cetirizine", "Loratadine", "Fluticasone nasal", "Montelukast"},
		Keywords:          []string{"allergies", "allergic rhinitis", "hay fever", "seasonal allergies", "nasal congestion"},
	},
}
