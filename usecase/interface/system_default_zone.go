package usecase

import (
	"context"

	"github.com/ca-srg/tzcore/domain/entity"
)

// SystemDefaultZone holds the persisted process-wide default identity.
// Like AbbreviationRegistry, it gives no ordering guarantee between a
// mutation and a concurrent Get.
type SystemDefaultZone interface {
	// Get returns the current default
	Get() *entity.TimeZone

	// Set persists tz as an explicit override and makes it the default
	Set(ctx context.Context, tz *entity.TimeZone) error

	// ResetToHostDetected discards any override and re-probes the host
	ResetToHostDetected(ctx context.Context) error

	// IsOverridden reports whether the current default came from Set
	IsOverridden() bool
}
