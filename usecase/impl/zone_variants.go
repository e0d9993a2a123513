package impl

import (
	"fmt"
	"time"

	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/valueobject"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// identityZone answers every query from a fixed identity
type identityZone struct {
	tz       *entity.TimeZone
	resolver usecase.OffsetResolver
}

func newIdentityZone(tz *entity.TimeZone, resolver usecase.OffsetResolver) *identityZone {
	return &identityZone{tz: tz, resolver: resolver}
}

func (z *identityZone) Kind() entity.ZoneKind { return entity.ZoneKindIdentity }
func (z *identityZone) Identity() *entity.TimeZone { return z.tz }
func (z *identityZone) Name() string { return z.tz.Name() }
func (z *identityZone) Payload() []byte { return z.tz.Payload() }
func (z *identityZone) SecondsFromUTC(at time.Time) int { return z.resolver.SecondsFromUTC(z.tz, at) }

func (z *identityZone) Abbreviation(at time.Time) (string, bool) {
	return z.resolver.Abbreviation(z.tz, at)
}

func (z *identityZone) IsDaylightSavingTime(at time.Time) bool {
	return z.resolver.IsDaylightSavingTime(z.tz, at)
}

func (z *identityZone) DaylightSavingTimeOffset(at time.Time) int {
	return z.resolver.DaylightSavingTimeOffset(z.tz, at)
}

func (z *identityZone) NextTransition(after time.Time) (time.Time, bool) {
	return z.resolver.NextTransition(z.tz, after)
}

func (z *identityZone) LocalizedName(style valueobject.NameStyle, locale string) (string, bool) {
	return z.resolver.LocalizedName(z.tz, style, locale)
}

func (z *identityZone) String() string {
	return z.tz.String()
}

// systemDefaultZone is the default identity as it was when requested.
// Later changes to the default do not affect it.
type systemDefaultZone struct {
	*identityZone
}

func (z *systemDefaultZone) Kind() entity.ZoneKind { return entity.ZoneKindSystemDefault }

func (z *systemDefaultZone) String() string {
	return fmt.Sprintf("System Default (%s)", z.tz.String())
}

// localZone holds no identity of its own. Every call reads the system
// default afresh and answers from it.
type localZone struct {
	defaults usecase.SystemDefaultZone
	resolver usecase.OffsetResolver
}

func (z *localZone) current() *entity.TimeZone {
	return z.defaults.Get()
}

func (z *localZone) Kind() entity.ZoneKind { return entity.ZoneKindLocal }
func (z *localZone) Identity() *entity.TimeZone { return z.current() }
func (z *localZone) Name() string { return z.current().Name() }
func (z *localZone) Payload() []byte { return z.current().Payload() }

func (z *localZone) SecondsFromUTC(at time.Time) int {
	return z.resolver.SecondsFromUTC(z.current(), at)
}

func (z *localZone) Abbreviation(at time.Time) (string, bool) {
	return z.resolver.Abbreviation(z.current(), at)
}

func (z *localZone) IsDaylightSavingTime(at time.Time) bool {
	return z.resolver.IsDaylightSavingTime(z.current(), at)
}

func (z *localZone) DaylightSavingTimeOffset(at time.Time) int {
	return z.resolver.DaylightSavingTimeOffset(z.current(), at)
}

func (z *localZone) NextTransition(after time.Time) (time.Time, bool) {
	return z.resolver.NextTransition(z.current(), after)
}

func (z *localZone) LocalizedName(style valueobject.NameStyle, locale string) (string, bool) {
	return z.resolver.LocalizedName(z.current(), style, locale)
}

func (z *localZone) String() string {
	return fmt.Sprintf("Local Time Zone (%s)", z.current().String())
}
