package repository

import (
	"time"
)

// ZoneRules is what a zone database hands back for a resolvable name
type ZoneRules struct {
	// Name is the name as resolved (e.g., "America/New_York", "GMT+0530")
	Name string

	// Location carries offsets, DST flags, abbreviations and transitions
	Location *time.Location

	// Fingerprint identifies the rule set independent of the name
	Fingerprint uint64
}

// ZoneDatabase is the authoritative source of zone rules
type ZoneDatabase interface {
	// Resolve returns the rules for name, or an error if the database cannot resolve it
	Resolve(name string) (*ZoneRules, error)

	// KnownZoneNames returns every region name the database can resolve, sorted
	KnownZoneNames() []string

	// AbbreviationTable returns the built-in abbreviation to name table.
	// Each call returns a fresh copy.
	AbbreviationTable() map[string]string

	// DetectHostZone probes the host configuration for its zone name
	DetectHostZone() (string, error)

	// Version returns the version of the rule data
	Version() string
}
