package repository

import (
	"context"
)

// StoredDefaultZone is the persisted form of an explicitly set system default
type StoredDefaultZone struct {
	Name       string
	Payload    []byte
	HasPayload bool
}

// DefaultZoneRepository persists the explicit system default override
type DefaultZoneRepository interface {
	// Load returns the stored override; found is false when none has been set
	Load(ctx context.Context) (zone StoredDefaultZone, found bool, err error)

	// Save replaces the stored override
	Save(ctx context.Context, zone StoredDefaultZone) error

	// Clear removes the stored override
	Clear(ctx context.Context) error

	// Close releases the underlying storage
	Close() error
}
