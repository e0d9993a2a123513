package repository

import (
	"context"
	"sync"

	"github.com/ca-srg/tzcore/domain/repository"
)

// MemoryDefaultZoneRepository keeps the override for the lifetime of the process
type MemoryDefaultZoneRepository struct {
	mu     sync.RWMutex
	stored *repository.StoredDefaultZone
}

// NewMemoryDefaultZoneRepository creates an empty in-memory repository
func NewMemoryDefaultZoneRepository() *MemoryDefaultZoneRepository {
	return &MemoryDefaultZoneRepository{}
}

// Load implements repository.DefaultZoneRepository
func (r *MemoryDefaultZoneRepository) Load(ctx context.Context) (repository.StoredDefaultZone, bool, error) {
	if err := ctx.Err(); err != nil {
		return repository.StoredDefaultZone{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stored == nil {
		return repository.StoredDefaultZone{}, false, nil
	}
	return copyStored(*r.stored), true, nil
}

// Save implements repository.DefaultZoneRepository
func (r *MemoryDefaultZoneRepository) Save(ctx context.Context, zone repository.StoredDefaultZone) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := copyStored(zone)
	r.mu.Lock()
	r.stored = &stored
	r.mu.Unlock()
	return nil
}

// Clear implements repository.DefaultZoneRepository
func (r *MemoryDefaultZoneRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.stored = nil
	r.mu.Unlock()
	return nil
}

// Close implements repository.DefaultZoneRepository
func (r *MemoryDefaultZoneRepository) Close() error {
	return nil
}

func copyStored(zone repository.StoredDefaultZone) repository.StoredDefaultZone {
	if zone.HasPayload {
		zone.Payload = append([]byte{}, zone.Payload...)
	} else {
		zone.Payload = nil
	}
	return zone
}
