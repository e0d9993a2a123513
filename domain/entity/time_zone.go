package entity

import (
	"fmt"
	"time"
)

// TimeZone is a resolved zone identity: a name the zone database accepted,
// the rules it resolved to, and an optional opaque payload. It is immutable.
//
// The payload is stored for archival fidelity only. Offset resolution never
// reads it.
type TimeZone struct {
	name        string
	payload     []byte
	hasPayload  bool
	rules       *time.Location
	fingerprint uint64
}

// NewTimeZone builds an identity from already-resolved rules. Callers obtain
// rules from the zone database; this constructor only checks that they exist.
func NewTimeZone(name string, payload []byte, rules *time.Location, fingerprint uint64) (*TimeZone, error) {
	if name == "" {
		return nil, fmt.Errorf("time zone name cannot be empty")
	}
	if rules == nil {
		return nil, fmt.Errorf("time zone %q has no resolved rules", name)
	}

	tz := &TimeZone{
		name:        name,
		rules:       rules,
		fingerprint: fingerprint,
	}
	if payload != nil {
		tz.payload = append([]byte{}, payload...)
		tz.hasPayload = true
	}
	return tz, nil
}

// Name returns the canonical name the zone was constructed from
func (z *TimeZone) Name() string {
	return z.name
}

// Payload returns a copy of the opaque payload, or nil when none was given
func (z *TimeZone) Payload() []byte {
	if !z.hasPayload {
		return nil
	}
	return append([]byte{}, z.payload...)
}

// HasPayload distinguishes an absent payload from an empty one
func (z *TimeZone) HasPayload() bool {
	return z.hasPayload
}

// Rules returns the resolved rule set
func (z *TimeZone) Rules() *time.Location {
	return z.rules
}

// Fingerprint identifies the rule set; equal fingerprints mean equivalent zones
func (z *TimeZone) Fingerprint() uint64 {
	return z.fingerprint
}

// String describes the zone as it is at the current instant
func (z *TimeZone) String() string {
	abbreviation, offset := time.Now().In(z.rules).Zone()
	return fmt.Sprintf("%s (%s) offset %d", z.name, abbreviation, offset)
}
