package usecase

import (
	"context"
)

// TimeZoneService is the entry point for constructing and comparing zones.
// It owns the abbreviation registry and the system default slot.
type TimeZoneService interface {
	// Construct resolves name and returns an identity zone
	Construct(name string) (Zone, error)

	// ConstructWithPayload resolves name and stores payload verbatim
	ConstructWithPayload(name string, payload []byte) (Zone, error)

	// ConstructFromAbbreviation looks abbreviation up in the registry, then resolves the name
	ConstructFromAbbreviation(abbreviation string) (Zone, error)

	// FixedOffset returns a zone with a constant offset and no DST; it never fails
	FixedOffset(secondsFromUTC int) Zone

	// Equal compares the resolved rule sets of two zones
	Equal(a, b Zone) bool

	// Hash is consistent with Equal
	Hash(z Zone) uint64

	// Local returns the live local zone singleton
	Local() Zone

	// SystemDefault returns a snapshot of the current system default
	SystemDefault() Zone

	// SetSystemDefault persists z's identity as the system default
	SetSystemDefault(ctx context.Context, z Zone) error

	// ResetSystemDefault discards the override and re-probes the host
	ResetSystemDefault(ctx context.Context) error

	// HostZone returns the host probe result without touching the default
	HostZone() (Zone, error)

	// KnownZoneNames returns every name the database can resolve
	KnownZoneNames() []string

	// DataVersion returns the version of the rule data
	DataVersion() string

	Abbreviations() AbbreviationRegistry
	Resolver() OffsetResolver
}
