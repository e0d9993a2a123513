package impl

import (
	"context"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

var localZoneHash = xxhash.Sum64String(valueobject.ArchiveClassLocalTimeZone)

// TimeZoneServiceImpl is the context object that ties the zone database, the
// abbreviation registry and the system default slot together. Each instance
// owns exactly one local zone.
type TimeZoneServiceImpl struct {
	database      repository.ZoneDatabase
	abbreviations usecase.AbbreviationRegistry
	defaults      usecase.SystemDefaultZone
	resolver      usecase.OffsetResolver
	local         *localZone
	logger        domain.Logger
}

// NewTimeZoneService creates a new instance of TimeZoneService
func NewTimeZoneService(
	database repository.ZoneDatabase,
	abbreviations usecase.AbbreviationRegistry,
	defaults usecase.SystemDefaultZone,
	resolver usecase.OffsetResolver,
	logger domain.Logger,
) *TimeZoneServiceImpl {
	return &TimeZoneServiceImpl{
		database:      database,
		abbreviations: abbreviations,
		defaults:      defaults,
		resolver:      resolver,
		local:         &localZone{defaults: defaults, resolver: resolver},
		logger:        logger,
	}
}

var _ usecase.TimeZoneService = (*TimeZoneServiceImpl)(nil)

// Construct resolves name and returns an identity zone
func (s *TimeZoneServiceImpl) Construct(name string) (usecase.Zone, error) {
	tz, err := resolveIdentity(s.database, name, nil)
	if err != nil {
		return nil, err
	}
	return newIdentityZone(tz, s.resolver), nil
}

// ConstructWithPayload resolves name and stores payload verbatim
func (s *TimeZoneServiceImpl) ConstructWithPayload(name string, payload []byte) (usecase.Zone, error) {
	if payload == nil {
		payload = []byte{}
	}
	tz, err := resolveIdentity(s.database, name, payload)
	if err != nil {
		return nil, err
	}
	return newIdentityZone(tz, s.resolver), nil
}

// ConstructFromAbbreviation looks abbreviation up in the current registry
// snapshot. A mapped name the database rejects fails as unresolvable.
func (s *TimeZoneServiceImpl) ConstructFromAbbreviation(abbreviation string) (usecase.Zone, error) {
	name, ok := s.abbreviations.Lookup(abbreviation)
	if !ok {
		return nil, domain.ErrUnknownAbbreviation(abbreviation)
	}
	return s.Construct(name)
}

// FixedOffset synthesizes a GMT±HHMM zone. The offset is the one the name
// encodes, so the zone survives an archive round trip by name.
func (s *TimeZoneServiceImpl) FixedOffset(secondsFromUTC int) usecase.Zone {
	name := valueobject.FixedOffsetName(secondsFromUTC)
	if zone, err := s.Construct(name); err == nil {
		return zone
	}

	offset, _ := valueobject.ParseFixedOffsetName(name)
	loc := time.FixedZone(name, offset)
	tz, _ := entity.NewTimeZone(name, nil, loc, valueobject.RulesFingerprint(loc))
	return newIdentityZone(tz, s.resolver)
}

// Equal compares resolved rule sets. The local zone equals only itself.
func (s *TimeZoneServiceImpl) Equal(a, b usecase.Zone) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() == entity.ZoneKindLocal || b.Kind() == entity.ZoneKindLocal {
		return a.Kind() == b.Kind()
	}
	return a.Identity().Fingerprint() == b.Identity().Fingerprint()
}

// Hash is consistent with Equal
func (s *TimeZoneServiceImpl) Hash(z usecase.Zone) uint64 {
	if z == nil {
		return 0
	}
	if z.Kind() == entity.ZoneKindLocal {
		return localZoneHash
	}
	return z.Identity().Fingerprint()
}

// Local returns the live local zone singleton
func (s *TimeZoneServiceImpl) Local() usecase.Zone {
	return s.local
}

// SystemDefault returns a snapshot of the current system default
func (s *TimeZoneServiceImpl) SystemDefault() usecase.Zone {
	return &systemDefaultZone{identityZone: newIdentityZone(s.defaults.Get(), s.resolver)}
}

// SetSystemDefault persists z's current identity as the system default
func (s *TimeZoneServiceImpl) SetSystemDefault(ctx context.Context, z usecase.Zone) error {
	if z == nil {
		return domain.ErrInvalidInput("zone", "must not be nil")
	}
	return s.defaults.Set(ctx, z.Identity())
}

// ResetSystemDefault discards the override and re-probes the host
func (s *TimeZoneServiceImpl) ResetSystemDefault(ctx context.Context) error {
	return s.defaults.ResetToHostDetected(ctx)
}

// HostZone returns the host probe result without touching the default
func (s *TimeZoneServiceImpl) HostZone() (usecase.Zone, error) {
	name, err := s.database.DetectHostZone()
	if err != nil {
		return nil, err
	}
	return s.Construct(name)
}

// KnownZoneNames returns every name the database can resolve
func (s *TimeZoneServiceImpl) KnownZoneNames() []string {
	return s.database.KnownZoneNames()
}

// DataVersion returns the version of the rule data
func (s *TimeZoneServiceImpl) DataVersion() string {
	return s.database.Version()
}

func (s *TimeZoneServiceImpl) Abbreviations() usecase.AbbreviationRegistry {
	return s.abbreviations
}

func (s *TimeZoneServiceImpl) Resolver() usecase.OffsetResolver {
	return s.resolver
}
