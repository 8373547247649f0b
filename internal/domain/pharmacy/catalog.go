package pharmacy

var catalog = []Pharmacy{
	{ID: "PH001", Name: "CVS Pharmacy #1234", Address: "123 Main St, Boston, MA 02101", Phone: "(617) 555-0100", Fax: "(617) 555-0101", Distance: "0.5 miles"},
	{ID: "PH002", Name: "Walgreens #5678", Address: "456 Oak Ave, Boston, MA 02102", Phone: "(617) 555-0200", Fax: "(617) 555-0201", Distance: "0.8 miles"},
	{ID: "PH003", Name: "Rite Aid #9101", Address: "789 Elm St, Boston, MA 02103", Phone: "(617) 555-0300", Fax: "(617) 555-0301", Distance: "1.2 miles"},
	{ID: "PH004", Name: "Community Pharmacy", Address: "321 Pine Rd, Boston, MA 02104", Phone: "(617) 555-0400", Fax: "(617) 555-0401", Distance: "1.5 miles"},
	{ID: "PH005", Name: "Target Pharmacy #2468", Address: "555 Commerce Blvd, Boston, MA 02105", Phone: "(617) 555-0500", Fax: "(617) 555-0501", Distance: "2.1 miles"},
	{ID: "PH006", Name: "Walmart Pharmacy #1357", Address: "777 Market St, Boston, MA 02106", Phone: "(617) 555-0600", Fax: "(617) 555-0601", Distance: "2.5 miles"},
	{ID: "PH007", Name: "Kroger Pharmacy #8642", Address: "999 Shopping Center Dr, Boston, MA 02107", Phone: "(617) 555-0700", Fax: "(617) 555-0701", Distance: "3.0 miles"},
	{ID: "PH008", Name: "Express Scripts Mail Order", Address: "PO Box 66588, St. Louis, MO 63166", Phone: "(800) 555-0800", Fax: "(800) 555-0801", Distance: "Mail Order"},
	{ID: "PH009", Name: "Specialty Pharmacy Services", Address: "1010 Medical Plaza, Boston, MA 02108", Phone: "(617) 555-0900", Fax: "(617) 555-0901", Distance: "1.8 miles"},
	{ID: "PH010", Name: "HealthMart Pharmacy", Address: "2020 Wellness Way, Boston, MA 02109", Phone: "(617) 555-1000", Fax: "(617) 555-1001", Distance: "2.3 miles"},
}
