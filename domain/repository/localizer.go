package repository

import (
	"time"

	"github.com/ca-srg/tzcore/domain/valueobject"
)

// Localizer renders display names for zones.
// An empty locale means the current locale of the process.
type Localizer interface {
	// LocalizedName returns the name of the zone in the given style, or false
	// when the style has no meaning for the zone
	LocalizedName(name string, rules *time.Location, style valueobject.NameStyle, locale string) (string, bool)
}
