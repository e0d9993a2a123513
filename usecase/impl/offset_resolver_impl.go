package impl

import (
	"time"

	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// maxStandardSearch bounds how many zone periods are walked to find standard time
const maxStandardSearch = 16

// OffsetResolverImpl implements OffsetResolver on top of resolved rules
type OffsetResolverImpl struct {
	localizer repository.Localizer
}

// NewOffsetResolver creates a new instance of OffsetResolver.
// localizer may be nil, in which case every localized name is absent.
func NewOffsetResolver(localizer repository.Localizer) usecase.OffsetResolver {
	return &OffsetResolverImpl{localizer: localizer}
}

// SecondsFromUTC returns the offset east of UTC in effect at the instant
func (r *OffsetResolverImpl) SecondsFromUTC(tz *entity.TimeZone, at time.Time) int {
	_, offset := at.In(tz.Rules()).Zone()
	return offset
}

// IsDaylightSavingTime reports whether DST is in effect at the instant
func (r *OffsetResolverImpl) IsDaylightSavingTime(tz *entity.TimeZone, at time.Time) bool {
	return at.In(tz.Rules()).IsDST()
}

// DaylightSavingTimeOffset returns the DST adjustment in seconds, 0 outside DST
func (r *OffsetResolverImpl) DaylightSavingTimeOffset(tz *entity.TimeZone, at time.Time) int {
	local := at.In(tz.Rules())
	if !local.IsDST() {
		return 0
	}
	_, offset := local.Zone()
	return offset - standardOffset(local)
}

// NextTransition returns the start of the zone period following the instant
func (r *OffsetResolverImpl) NextTransition(tz *entity.TimeZone, after time.Time) (time.Time, bool) {
	_, end := after.In(tz.Rules()).ZoneBounds()
	if end.IsZero() {
		return time.Time{}, false
	}
	return end, true
}

// Abbreviation returns the abbreviation in effect at the instant
func (r *OffsetResolverImpl) Abbreviation(tz *entity.TimeZone, at time.Time) (string, bool) {
	abbreviation, _ := at.In(tz.Rules()).Zone()
	if abbreviation == "" {
		return "", false
	}
	return abbreviation, true
}

// LocalizedName forwards to the localization engine
func (r *OffsetResolverImpl) LocalizedName(tz *entity.TimeZone, style valueobject.NameStyle, locale string) (string, bool) {
	if r.localizer == nil || !style.IsValid() {
		return "", false
	}
	return r.localizer.LocalizedName(tz.Name(), tz.Rules(), style, locale)
}

// standardOffset finds the offset of the nearest non-DST period, searching
// backwards first and then forwards. It returns the current offset when the
// rules have no standard period within reach.
func standardOffset(local time.Time) int {
	loc := local.Location()

	probe := local
	for i := 0; i < maxStandardSearch; i++ {
		start, _ := probe.ZoneBounds()
		if start.IsZero() {
			break
		}
		probe = start.Add(-time.Second).In(loc)
		if !probe.IsDST() {
			_, offset := probe.Zone()
			return offset
		}
	}

	probe = local
	for i := 0; i < maxStandardSearch; i++ {
		_, end := probe.ZoneBounds()
		if end.IsZero() {
			break
		}
		probe = end.In(loc)
		if !probe.IsDST() {
			_, offset := probe.Zone()
			return offset
		}
	}

	_, offset := local.Zone()
	return offset
}
