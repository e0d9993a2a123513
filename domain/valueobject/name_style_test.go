package valueobject

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameStyle(t *testing.T) {
	t.Run("six styles", func(t *testing.T) {
		styles := AllNameStyles()
		assert.Len(t, styles, 6)
		for _, style := range styles {
			assert.True(t, style.IsValid())
			parsed, err := ParseNameStyle(style.String())
			require.NoError(t, err)
			assert.Equal(t, style, parsed)
		}
	})

	t.Run("classification", func(t *testing.T) {
		assert.True(t, NameStyleShortDaylightSaving.IsShort())
		assert.True(t, NameStyleShortDaylightSaving.IsDaylightSaving())
		assert.False(t, NameStyleStandard.IsShort())
		assert.True(t, NameStyleShortGeneric.IsGeneric())
		assert.False(t, NameStyleDaylightSaving.IsGeneric())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseNameStyle("medium")
		assert.Error(t, err)
		assert.False(t, NameStyle(42).IsValid())
		assert.Equal(t, "NameStyle(42)", NameStyle(42).String())
	})
}

func TestArchiveRecord(t *testing.T) {
	record := NewArchiveRecord()
	payload := []byte{1, 2, 3}
	record.EncodeString(ArchiveKeyName, "Europe/Paris")
	record.EncodeBytes(ArchiveKeyData, payload)
	payload[0] = 9

	name, ok := record.DecodeString(ArchiveKeyName)
	assert.True(t, ok)
	assert.Equal(t, "Europe/Paris", name)

	data, ok := record.DecodeBytes(ArchiveKeyData)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, ok = record.DecodeBytes(ArchiveKeyName)
	assert.False(t, ok, "a string value must not decode as bytes")
	_, ok = record.DecodeString("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{ArchiveKeyData, ArchiveKeyName}, record.Keys())
	assert.True(t, record.AllowsKeyedCoding())
}

func TestRulesFingerprint(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	alias, err := time.LoadLocation("US/Eastern")
	require.NoError(t, err)
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	assert.Equal(t, RulesFingerprint(newYork), RulesFingerprint(alias))
	assert.NotEqual(t, RulesFingerprint(newYork), RulesFingerprint(chicago))

	fixedA := time.FixedZone("GMT+0530", 19800)
	fixedB := time.FixedZone("GMT+0530", 19800)
	assert.Equal(t, RulesFingerprint(fixedA), RulesFingerprint(fixedB))
	assert.NotEqual(t, RulesFingerprint(fixedA), RulesFingerprint(time.FixedZone("GMT+0600", 21600)))
}
