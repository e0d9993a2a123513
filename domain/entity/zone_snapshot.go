package entity

import "time"

// ZoneSnapshot is one zone evaluated at a single instant, as written to a zone table export
type ZoneSnapshot struct {
	Name           string
	At             time.Time
	SecondsFromUTC int
	Abbreviation   string
	IsDST          bool
	DSTOffset      int
	NextTransition *time.Time
}
