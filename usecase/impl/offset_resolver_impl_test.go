package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

type recordingLocalizer struct {
	name   string
	style  valueobject.NameStyle
	locale string
}

func (l *recordingLocalizer) LocalizedName(name string, rules *time.Location, style valueobject.NameStyle, locale string) (string, bool) {
	l.name = name
	l.style = style
	l.locale = locale
	return "rendered", true
}

func mustIdentity(t *testing.T, name string) *entity.TimeZone {
	t.Helper()
	tz, err := resolveIdentity(newFakeZoneDatabase("UTC"), name, nil)
	require.NoError(t, err)
	return tz
}

func TestOffsetResolver_NamedZone(t *testing.T) {
	resolver := NewOffsetResolver(nil)
	newYork := mustIdentity(t, "America/New_York")

	tests := []struct {
		name         string
		at           time.Time
		offset       int
		isDST        bool
		dstOffset    int
		abbreviation string
	}{
		{
			name:         "winter",
			at:           time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
			offset:       -18000,
			isDST:        false,
			dstOffset:    0,
			abbreviation: "EST",
		},
		{
			name:         "summer",
			at:           time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC),
			offset:       -14400,
			isDST:        true,
			dstOffset:    3600,
			abbreviation: "EDT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, resolver.SecondsFromUTC(newYork, tt.at))
			assert.Equal(t, tt.isDST, resolver.IsDaylightSavingTime(newYork, tt.at))
			assert.Equal(t, tt.dstOffset, resolver.DaylightSavingTimeOffset(newYork, tt.at))
			abbreviation, ok := resolver.Abbreviation(newYork, tt.at)
			assert.True(t, ok)
			assert.Equal(t, tt.abbreviation, abbreviation)
		})
	}
}

func TestOffsetResolver_HalfHourDaylightSaving(t *testing.T) {
	resolver := NewOffsetResolver(nil)
	lordHowe := mustIdentity(t, "Australia/Lord_Howe")

	january := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, resolver.IsDaylightSavingTime(lordHowe, january))
	assert.Equal(t, 1800, resolver.DaylightSavingTimeOffset(lordHowe, january))
}

func TestOffsetResolver_NextTransition(t *testing.T) {
	resolver := NewOffsetResolver(nil)

	t.Run("named zone", func(t *testing.T) {
		newYork := mustIdentity(t, "America/New_York")
		after := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		next, ok := resolver.NextTransition(newYork, after)
		require.True(t, ok)
		assert.True(t, next.Equal(time.Date(2024, time.March, 10, 7, 0, 0, 0, time.UTC)))
		assert.True(t, next.After(after))
	})

	t.Run("fixed zone has none", func(t *testing.T) {
		fixed := mustIdentity(t, "GMT+0530")
		_, ok := resolver.NextTransition(fixed, time.Now())
		assert.False(t, ok)
	})

	t.Run("UTC has none", func(t *testing.T) {
		_, ok := resolver.NextTransition(mustIdentity(t, "UTC"), time.Now())
		assert.False(t, ok)
	})
}

func TestOffsetResolver_FixedZone(t *testing.T) {
	resolver := NewOffsetResolver(nil)
	fixed := mustIdentity(t, "GMT-0800")

	for _, at := range []time.Time{
		time.Date(1950, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
	} {
		assert.Equal(t, -28800, resolver.SecondsFromUTC(fixed, at))
		assert.False(t, resolver.IsDaylightSavingTime(fixed, at))
		assert.Equal(t, 0, resolver.DaylightSavingTimeOffset(fixed, at))
		abbreviation, ok := resolver.Abbreviation(fixed, at)
		assert.True(t, ok)
		assert.Equal(t, "GMT-0800", abbreviation)
	}
}

func TestOffsetResolver_LocalizedName(t *testing.T) {
	tz := mustIdentity(t, "Europe/Paris")

	t.Run("no localizer", func(t *testing.T) {
		_, ok := NewOffsetResolver(nil).LocalizedName(tz, valueobject.NameStyleStandard, "en_US")
		assert.False(t, ok)
	})

	t.Run("forwards style and locale", func(t *testing.T) {
		localizer := &recordingLocalizer{}
		name, ok := NewOffsetResolver(localizer).LocalizedName(tz, valueobject.NameStyleShortDaylightSaving, "fr_FR")
		require.True(t, ok)
		assert.Equal(t, "rendered", name)
		assert.Equal(t, "Europe/Paris", localizer.name)
		assert.Equal(t, valueobject.NameStyleShortDaylightSaving, localizer.style)
		assert.Equal(t, "fr_FR", localizer.locale)
	})

	t.Run("invalid style", func(t *testing.T) {
		_, ok := NewOffsetResolver(&recordingLocalizer{}).LocalizedName(tz, valueobject.NameStyle(99), "")
		assert.False(t, ok)
	})
}
