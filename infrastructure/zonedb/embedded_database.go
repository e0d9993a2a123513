package zonedb

import (
	"4d63.com/tz"

	"github.com/ca-srg/tzcore/domain/repository"
)

// EmbeddedVersion identifies the zone data compiled into 4d63.com/tz
const EmbeddedVersion = "embedded"

// EmbeddedDatabase resolves zones from the zoneinfo embedded in 4d63.com/tz,
// so results do not depend on what the host has installed
type EmbeddedDatabase struct {
	*catalog
}

// NewEmbeddedDatabase creates a database backed by embedded zone data
func NewEmbeddedDatabase(probe *HostProbe) *EmbeddedDatabase {
	return &EmbeddedDatabase{
		catalog: newCatalog(tz.LoadLocation, DefaultZoneDirs, probe),
	}
}

var _ repository.ZoneDatabase = (*EmbeddedDatabase)(nil)

func (d *EmbeddedDatabase) Version() string {
	return EmbeddedVersion
}
