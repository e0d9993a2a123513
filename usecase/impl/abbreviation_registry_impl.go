package impl

import (
	"context"
	"sync/atomic"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// AbbreviationRegistryImpl keeps the mapping behind an atomically swapped
// pointer. A published map is never written again, so readers need no lock.
type AbbreviationRegistryImpl struct {
	database repository.ZoneDatabase
	logger   domain.Logger
	mapping  atomic.Pointer[map[string]string]
}

// NewAbbreviationRegistry seeds the registry from the database's built-in table
func NewAbbreviationRegistry(database repository.ZoneDatabase, logger domain.Logger) *AbbreviationRegistryImpl {
	r := &AbbreviationRegistryImpl{
		database: database,
		logger:   logger,
	}
	table := database.AbbreviationTable()
	r.mapping.Store(&table)
	return r
}

var _ usecase.AbbreviationRegistry = (*AbbreviationRegistryImpl)(nil)

// Snapshot returns a copy of the current mapping
func (r *AbbreviationRegistryImpl) Snapshot() map[string]string {
	return copyMapping(*r.mapping.Load())
}

// Replace overwrites the whole mapping
func (r *AbbreviationRegistryImpl) Replace(ctx context.Context, mapping map[string]string) {
	next := copyMapping(mapping)
	r.mapping.Store(&next)
	r.logger.Info(ctx, "Abbreviation registry replaced",
		domain.NewField("entries", len(next)))
}

// Lookup returns the name for abbreviation in the current mapping
func (r *AbbreviationRegistryImpl) Lookup(abbreviation string) (string, bool) {
	name, ok := (*r.mapping.Load())[abbreviation]
	return name, ok
}

// ResetToDefault restores the database's built-in table
func (r *AbbreviationRegistryImpl) ResetToDefault(ctx context.Context) {
	table := r.database.AbbreviationTable()
	r.mapping.Store(&table)
	r.logger.Info(ctx, "Abbreviation registry reset to database defaults",
		domain.NewField("entries", len(table)))
}

func copyMapping(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
