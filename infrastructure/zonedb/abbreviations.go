package zonedb

// defaultAbbreviations is the built-in abbreviation table. Where an
// abbreviation is shared by several regions the most populous one wins.
var defaultAbbreviations = map[string]string{
	"ADT":  "America/Halifax",
	"AKDT": "America/Juneau",
	"AKST": "America/Juneau",
	"ART":  "America/Argentina/Buenos_Aires",
	"AST":  "America/Halifax",
	"BDT":  "Asia/Dhaka",
	"BRST": "America/Sao_Paulo",
	"BRT":  "America/Sao_Paulo",
	"BST":  "Europe/London",
	"CAT":  "Africa/Harare",
	"CDT":  "America/Chicago",
	"CEST": "Europe/Paris",
	"CET":  "Europe/Paris",
	"CLST": "America/Santiago",
	"CLT":  "America/Santiago",
	"COT":  "America/Bogota",
	"CST":  "America/Chicago",
	"EAT":  "Africa/Addis_Ababa",
	"EDT":  "America/New_York",
	"EEST": "Europe/Athens",
	"EET":  "Europe/Athens",
	"EST":  "America/New_York",
	"GMT":  "GMT",
	"GST":  "Asia/Dubai",
	"HKT":  "Asia/Hong_Kong",
	"HST":  "Pacific/Honolulu",
	"ICT":  "Asia/Bangkok",
	"IRST": "Asia/Tehran",
	"IST":  "Asia/Kolkata",
	"JST":  "Asia/Tokyo",
	"KST":  "Asia/Seoul",
	"MDT":  "America/Denver",
	"MSD":  "Europe/Moscow",
	"MSK":  "Europe/Moscow",
	"MST":  "America/Denver",
	"NZDT": "Pacific/Auckland",
	"NZST": "Pacific/Auckland",
	"PDT":  "America/Los_Angeles",
	"PET":  "America/Lima",
	"PHT":  "Asia/Manila",
	"PKT":  "Asia/Karachi",
	"PST":  "America/Los_Angeles",
	"SGT":  "Asia/Singapore",
	"UTC":  "UTC",
	"WAT":  "Africa/Lagos",
	"WEST": "Europe/Lisbon",
	"WET":  "Europe/Lisbon",
	"WIT":  "Asia/Jakarta",
}

// DefaultAbbreviations returns a fresh copy of the built-in table
func DefaultAbbreviations() map[string]string {
	table := make(map[string]string, len(defaultAbbreviations))
	for abbreviation, name := range defaultAbbreviations {
		table[abbreviation] = name
	}
	return table
}
