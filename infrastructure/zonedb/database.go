package zonedb

import (
	"fmt"
	"strings"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
)

// Zone data sources selectable from configuration
const (
	SourceSystem   = "system"
	SourceEmbedded = "embedded"
)

// NewDatabase creates the zone database for source
func NewDatabase(source string, probe *HostProbe) (repository.ZoneDatabase, error) {
	switch strings.ToLower(source) {
	case "", SourceSystem:
		return NewStdlibDatabase(probe), nil
	case SourceEmbedded:
		return NewEmbeddedDatabase(probe), nil
	default:
		return nil, domain.ErrInvalidInput("zone database source",
			fmt.Sprintf("must be %q or %q, got %q", SourceSystem, SourceEmbedded, source))
	}
}
