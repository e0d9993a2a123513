package usecase

import (
	"time"

	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// Zone is the query surface shared by every zone variant.
// Identity zones answer from their own rules, system default zones from the
// snapshot taken when they were requested, and the local zone from whatever
// the system default is at the moment of the call.
type Zone interface {
	// Kind returns the variant tag
	Kind() entity.ZoneKind

	// Identity returns the identity queries are answered from.
	// For the local zone this is read from the system default on every call.
	Identity() *entity.TimeZone

	// Name returns the canonical name of the identity
	Name() string

	// Payload returns a copy of the identity's opaque payload, or nil
	Payload() []byte

	// SecondsFromUTC returns the offset east of UTC in effect at the instant
	SecondsFromUTC(at time.Time) int

	// Abbreviation returns the abbreviation in effect at the instant
	Abbreviation(at time.Time) (string, bool)

	// IsDaylightSavingTime reports whether DST is in effect at the instant
	IsDaylightSavingTime(at time.Time) bool

	// DaylightSavingTimeOffset returns the DST adjustment in seconds, 0 outside DST
	DaylightSavingTimeOffset(at time.Time) int

	// NextTransition returns the first transition strictly after the instant
	NextTransition(after time.Time) (time.Time, bool)

	// LocalizedName renders the zone name in the given style and locale
	LocalizedName(style valueobject.NameStyle, locale string) (string, bool)

	// String returns a debug description of the zone
	String() string
}

// CurrentSecondsFromUTC returns the offset of z at the current instant
func CurrentSecondsFromUTC(z Zone) int {
	return z.SecondsFromUTC(time.Now())
}

// CurrentAbbreviation returns the abbreviation of z at the current instant
func CurrentAbbreviation(z Zone) (string, bool) {
	return z.Abbreviation(time.Now())
}

// CurrentIsDaylightSavingTime reports whether z observes DST at the current instant
func CurrentIsDaylightSavingTime(z Zone) bool {
	return z.IsDaylightSavingTime(time.Now())
}

// CurrentDaylightSavingTimeOffset returns the DST adjustment of z at the current instant
func CurrentDaylightSavingTimeOffset(z Zone) int {
	return z.DaylightSavingTimeOffset(time.Now())
}

// CurrentNextTransition returns the next transition of z after the current instant
func CurrentNextTransition(z Zone) (time.Time, bool) {
	return z.NextTransition(time.Now())
}
