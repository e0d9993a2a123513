package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/valueobject"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// unkeyedArchive only supports positional coding
type unkeyedArchive struct{}

func (unkeyedArchive) AllowsKeyedCoding() bool { return false }
func (unkeyedArchive) EncodeString(key, value string) {}
func (unkeyedArchive) EncodeBytes(key string, value []byte) {}
func (unkeyedArchive) DecodeString(key string) (string, bool) { return "", false }
func (unkeyedArchive) DecodeBytes(key string) ([]byte, bool) { return nil, false }
func (unkeyedArchive) Has(key string) bool { return false }

func TestArchivalCodec_RoundTrip(t *testing.T) {
	tc := newTestContext(t, "UTC")

	withPayload, err := tc.service.ConstructWithPayload("Asia/Tokyo", []byte{1, 2, 3})
	require.NoError(t, err)
	emptyPayload, err := tc.service.ConstructWithPayload("Asia/Tokyo", []byte{})
	require.NoError(t, err)

	zones := map[string]usecase.Zone{
		"named":          mustZone(t, tc, "America/New_York"),
		"with payload":   withPayload,
		"empty payload":  emptyPayload,
		"fixed offset":   tc.service.FixedOffset(19800),
		"rounded offset": tc.service.FixedOffset(89),
		"system default": tc.service.SystemDefault(),
	}

	for name, zone := range zones {
		t.Run(name, func(t *testing.T) {
			record := valueobject.NewArchiveRecord()
			tc.codec.Encode(zone, record)

			decoded, err := tc.codec.Decode(record)
			require.NoError(t, err)
			assert.True(t, tc.service.Equal(zone, decoded))
			assert.Equal(t, zone.Name(), decoded.Name())
			assert.Equal(t, zone.Payload(), decoded.Payload())
			assert.Equal(t, zone.Identity().HasPayload(), decoded.Identity().HasPayload())
		})
	}
}

func TestArchivalCodec_Encode(t *testing.T) {
	tc := newTestContext(t, "UTC")

	t.Run("identity without payload omits data key", func(t *testing.T) {
		record := valueobject.NewArchiveRecord()
		tc.codec.Encode(mustZone(t, tc, "Europe/Paris"), record)

		name, ok := record.DecodeString(valueobject.ArchiveKeyName)
		assert.True(t, ok)
		assert.Equal(t, "Europe/Paris", name)
		assert.False(t, record.Has(valueobject.ArchiveKeyData))
		class, _ := record.DecodeString(valueobject.ArchiveKeyClass)
		assert.Equal(t, valueobject.ArchiveClassTimeZone, class)
	})

	t.Run("local zone writes only a placeholder", func(t *testing.T) {
		record := valueobject.NewArchiveRecord()
		tc.codec.Encode(tc.service.Local(), record)

		assert.Equal(t, []string{valueobject.ArchiveKeyClass}, record.Keys())
		class, _ := record.DecodeString(valueobject.ArchiveKeyClass)
		assert.Equal(t, valueobject.ArchiveClassLocalTimeZone, class)
	})
}

func TestArchivalCodec_DecodeLocal(t *testing.T) {
	tc := newTestContext(t, "UTC")

	record := valueobject.NewArchiveRecord()
	record.EncodeString(valueobject.ArchiveKeyClass, valueobject.ArchiveClassLocalTimeZone)
	record.EncodeString(valueobject.ArchiveKeyName, "Not/AZone")
	record.EncodeBytes(valueobject.ArchiveKeyData, []byte("stray"))

	decoded, err := tc.codec.Decode(record)
	require.NoError(t, err)
	assert.Same(t, tc.service.Local(), decoded)
}

func TestArchivalCodec_DecodeFailures(t *testing.T) {
	tc := newTestContext(t, "UTC")

	t.Run("missing name", func(t *testing.T) {
		record := valueobject.NewArchiveRecord()
		record.EncodeBytes(valueobject.ArchiveKeyData, []byte{1})

		_, err := tc.codec.Decode(record)
		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingMandatoryField))
	})

	t.Run("name stored as bytes", func(t *testing.T) {
		record := valueobject.NewArchiveRecord()
		record.EncodeBytes(valueobject.ArchiveKeyName, []byte("Europe/Paris"))

		_, err := tc.codec.Decode(record)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingMandatoryField))
	})

	t.Run("unresolvable name", func(t *testing.T) {
		record := valueobject.NewArchiveRecord()
		record.EncodeString(valueobject.ArchiveKeyName, "Nowhere/Special")

		_, err := tc.codec.Decode(record)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeUnresolvableName))
	})
}

func TestArchivalCodec_UnkeyedArchivePanics(t *testing.T) {
	tc := newTestContext(t, "UTC")

	assert.PanicsWithValue(t, unkeyedCodingMessage, func() {
		tc.codec.Encode(mustZone(t, tc, "UTC"), unkeyedArchive{})
	})
	assert.PanicsWithValue(t, unkeyedCodingMessage, func() {
		_, _ = tc.codec.Decode(unkeyedArchive{})
	})
}
