package valueobject

import (
	"fmt"
	"strconv"
)

const (
	fixedOffsetPrefix = "GMT"

	// maxFixedOffsetHours is the largest hour count the two-digit field can hold.
	maxFixedOffsetHours = 99
)

// FixedOffsetName synthesizes the canonical name of a constant-offset zone
// from a signed offset in seconds east of UTC.
//
// The magnitude is rounded to the nearest minute (ties round up) and written
// as GMT±HHMM. Hour counts above 99 are clamped to 99 while keeping the
// already reduced minute remainder, so names for offsets of 100 hours or more
// do not round-trip to the original offset.
func FixedOffsetName(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
	}
	magnitude := absSeconds(seconds)

	minutes := magnitude / 60
	if magnitude%60 >= 30 {
		minutes++
	}
	hours := minutes / 60
	minutes %= 60
	if hours > maxFixedOffsetHours {
		hours = maxFixedOffsetHours
	}

	return fmt.Sprintf("%s%s%02d%02d", fixedOffsetPrefix, sign, hours, minutes)
}

// ParseFixedOffsetName reports the offset in seconds encoded by a name of
// the form GMT±HHMM. It returns false for any other shape.
func ParseFixedOffsetName(name string) (int, bool) {
	if len(name) != len(fixedOffsetPrefix)+5 || name[:len(fixedOffsetPrefix)] != fixedOffsetPrefix {
		return 0, false
	}
	rest := name[len(fixedOffsetPrefix):]

	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}

	for _, c := range rest[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	hours, _ := strconv.Atoi(rest[1:3])
	minutes, _ := strconv.Atoi(rest[3:5])
	if minutes >= 60 {
		return 0, false
	}

	return sign * (hours*3600 + minutes*60), true
}

func absSeconds(seconds int) uint64 {
	if seconds >= 0 {
		return uint64(seconds)
	}
	// -(seconds+1) cannot overflow, even for the minimum int.
	return uint64(-(seconds + 1)) + 1
}
