package entity

// ZoneKind tags the three zone variants
type ZoneKind int

const (
	// ZoneKindIdentity is a zone built from a name, an abbreviation or a fixed offset
	ZoneKindIdentity ZoneKind = iota
	// ZoneKindSystemDefault is a snapshot of the system default slot taken when it was requested
	ZoneKindSystemDefault
	// ZoneKindLocal is the live proxy that re-reads the system default on every query
	ZoneKindLocal
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneKindIdentity:
		return "identity"
	case ZoneKindSystemDefault:
		return "system-default"
	case ZoneKindLocal:
		return "local"
	default:
		return "unknown"
	}
}
