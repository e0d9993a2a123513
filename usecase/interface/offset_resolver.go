package usecase

import (
	"time"

	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// OffsetResolver answers side-effect-free queries for an identity at an instant
type OffsetResolver interface {
	SecondsFromUTC(tz *entity.TimeZone, at time.Time) int
	IsDaylightSavingTime(tz *entity.TimeZone, at time.Time) bool

	// DaylightSavingTimeOffset returns the offset minus the standard offset while DST is in effect
	DaylightSavingTimeOffset(tz *entity.TimeZone, at time.Time) int

	// NextTransition returns false when the rules have no later transition
	NextTransition(tz *entity.TimeZone, after time.Time) (time.Time, bool)

	Abbreviation(tz *entity.TimeZone, at time.Time) (string, bool)

	// LocalizedName forwards to the localization engine
	LocalizedName(tz *entity.TimeZone, style valueobject.NameStyle, locale string) (string, bool)
}
