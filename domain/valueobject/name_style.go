package valueobject

import (
	"fmt"
	"strings"
)

// NameStyle selects the form of a localized zone name
type NameStyle int

const (
	// NameStyleStandard is the long standard-time name, e.g. "Central Standard Time"
	NameStyleStandard NameStyle = iota
	// NameStyleShortStandard is the short standard-time name, e.g. "CST"
	NameStyleShortStandard
	// NameStyleDaylightSaving is the long daylight-time name, e.g. "Central Daylight Time"
	NameStyleDaylightSaving
	// NameStyleShortDaylightSaving is the short daylight-time name, e.g. "CDT"
	NameStyleShortDaylightSaving
	// NameStyleGeneric is the long generic name, e.g. "Central Time"
	NameStyleGeneric
	// NameStyleShortGeneric is the short generic name, e.g. "CT"
	NameStyleShortGeneric
)

var nameStyleNames = map[NameStyle]string{
	NameStyleStandard:            "standard",
	NameStyleShortStandard:       "short-standard",
	NameStyleDaylightSaving:      "daylight",
	NameStyleShortDaylightSaving: "short-daylight",
	NameStyleGeneric:             "generic",
	NameStyleShortGeneric:        "short-generic",
}

// AllNameStyles returns every style in declaration order
func AllNameStyles() []NameStyle {
	return []NameStyle{
		NameStyleStandard,
		NameStyleShortStandard,
		NameStyleDaylightSaving,
		NameStyleShortDaylightSaving,
		NameStyleGeneric,
		NameStyleShortGeneric,
	}
}

// ParseNameStyle converts a style name such as "short-daylight" to a NameStyle
func ParseNameStyle(s string) (NameStyle, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for style, name := range nameStyleNames {
		if name == normalized {
			return style, nil
		}
	}
	return 0, fmt.Errorf("unknown name style %q", s)
}

func (s NameStyle) String() string {
	if name, ok := nameStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("NameStyle(%d)", int(s))
}

// IsValid reports whether s is one of the six defined styles
func (s NameStyle) IsValid() bool {
	_, ok := nameStyleNames[s]
	return ok
}

func (s NameStyle) IsShort() bool {
	return s == NameStyleShortStandard || s == NameStyleShortDaylightSaving || s == NameStyleShortGeneric
}

func (s NameStyle) IsDaylightSaving() bool {
	return s == NameStyleDaylightSaving || s == NameStyleShortDaylightSaving
}

func (s NameStyle) IsGeneric() bool {
	return s == NameStyleGeneric || s == NameStyleShortGeneric
}
