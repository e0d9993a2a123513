package impl

import (
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// resolveIdentity resolves name through the database and builds an identity.
// A nil payload means no payload.
func resolveIdentity(database repository.ZoneDatabase, name string, payload []byte) (*entity.TimeZone, error) {
	if name == "" {
		return nil, domain.ErrUnresolvableName(name, domain.ErrInvalidInput("name", "must not be empty"))
	}

	rules, err := database.Resolve(name)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeUnresolvableName) {
			return nil, err
		}
		return nil, domain.ErrUnresolvableName(name, err)
	}

	tz, err := entity.NewTimeZone(rules.Name, payload, rules.Location, rules.Fingerprint)
	if err != nil {
		return nil, domain.ErrUnresolvableName(name, err)
	}
	return tz, nil
}

// utcIdentity is the last-resort identity when neither the host nor the
// database can supply one
func utcIdentity() *entity.TimeZone {
	tz, _ := entity.NewTimeZone("UTC", nil, time.UTC, valueobject.RulesFingerprint(time.UTC))
	return tz
}
