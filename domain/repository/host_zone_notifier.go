package repository

import (
	"time"
)

// SystemTimeZoneDidChange is the name of the host zone change event
const SystemTimeZoneDidChange = "system time zone changed"

// HostZoneEvent is delivered to subscribers when the host zone changes.
// Previously obtained local zone results are stale once it arrives.
type HostZoneEvent struct {
	Name         string
	PreviousZone string
	CurrentZone  string
	ObservedAt   time.Time
}

// HostZoneHandler receives host zone events
type HostZoneHandler func(event HostZoneEvent)

// HostZoneNotifier delivers host zone events to explicit subscribers
type HostZoneNotifier interface {
	// Subscribe registers handler and returns a function that removes it
	Subscribe(handler HostZoneHandler) (unsubscribe func())
}
