package valueobject

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// The fingerprint window covers recorded history and the rule-extended future.
var (
	fingerprintStart = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	fingerprintEnd   = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const maxFingerprintPeriods = 2048

// RulesFingerprint hashes the observable behaviour of a rule set: every zone
// period between 1900 and 2100 with its start, offset, DST flag and
// abbreviation. The location name is not part of the hash, so two names the
// database links to the same rules produce the same fingerprint.
func RulesFingerprint(loc *time.Location) uint64 {
	digest := xxhash.New()
	var buf [8]byte

	at := fingerprintStart
	for i := 0; i < maxFingerprintPeriods && at.Before(fingerprintEnd); i++ {
		local := at.In(loc)
		abbreviation, offset := local.Zone()

		binary.BigEndian.PutUint64(buf[:], uint64(at.Unix()))
		_, _ = digest.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(int64(offset)))
		_, _ = digest.Write(buf[:])
		if local.IsDST() {
			_, _ = digest.Write([]byte{1})
		} else {
			_, _ = digest.Write([]byte{0})
		}
		_, _ = digest.WriteString(abbreviation)
		_, _ = digest.Write([]byte{0})

		_, end := local.ZoneBounds()
		if end.IsZero() || !end.After(at) {
			break
		}
		at = end
	}

	return digest.Sum64()
}
