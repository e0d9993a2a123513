package impl

import (
	"context"
	"sync/atomic"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

type defaultSlot struct {
	zone       *entity.TimeZone
	overridden bool
}

// SystemDefaultZoneImpl implements SystemDefaultZone with a persisted override
// and an atomically swapped slot
type SystemDefaultZoneImpl struct {
	database   repository.ZoneDatabase
	repository repository.DefaultZoneRepository
	logger     domain.Logger
	slot       atomic.Pointer[defaultSlot]
}

// NewSystemDefaultZone initializes the slot from the persisted override, or
// from the host probe when there is none. Falling back to UTC is logged, not
// returned as an error.
func NewSystemDefaultZone(ctx context.Context, database repository.ZoneDatabase, repo repository.DefaultZoneRepository, logger domain.Logger) *SystemDefaultZoneImpl {
	s := &SystemDefaultZoneImpl{
		database:   database,
		repository: repo,
		logger:     logger,
	}

	if tz, ok := s.loadOverride(ctx); ok {
		s.slot.Store(&defaultSlot{zone: tz, overridden: true})
		return s
	}

	s.slot.Store(&defaultSlot{zone: s.detectHostZone(ctx)})
	return s
}

var _ usecase.SystemDefaultZone = (*SystemDefaultZoneImpl)(nil)

// Get returns the current default
func (s *SystemDefaultZoneImpl) Get() *entity.TimeZone {
	return s.slot.Load().zone
}

// IsOverridden reports whether the current default came from Set
func (s *SystemDefaultZoneImpl) IsOverridden() bool {
	return s.slot.Load().overridden
}

// Set persists tz and then makes it the default
func (s *SystemDefaultZoneImpl) Set(ctx context.Context, tz *entity.TimeZone) error {
	if tz == nil {
		return domain.ErrInvalidInput("zone", "must not be nil")
	}

	stored := repository.StoredDefaultZone{
		Name:       tz.Name(),
		Payload:    tz.Payload(),
		HasPayload: tz.HasPayload(),
	}
	if err := s.repository.Save(ctx, stored); err != nil {
		return domain.ErrRepository("SaveDefaultZone", err)
	}

	s.slot.Store(&defaultSlot{zone: tz, overridden: true})
	s.logger.Info(ctx, "System default time zone set", domain.ZoneField(tz.Name()))
	return nil
}

// ResetToHostDetected clears the persisted override and re-probes the host
func (s *SystemDefaultZoneImpl) ResetToHostDetected(ctx context.Context) error {
	if err := s.repository.Clear(ctx); err != nil {
		return domain.ErrRepository("ClearDefaultZone", err)
	}

	tz := s.detectHostZone(ctx)
	s.slot.Store(&defaultSlot{zone: tz})
	s.logger.Info(ctx, "System default time zone reset to host setting", domain.ZoneField(tz.Name()))
	return nil
}

func (s *SystemDefaultZoneImpl) loadOverride(ctx context.Context) (*entity.TimeZone, bool) {
	stored, found, err := s.repository.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "Failed to load persisted default time zone, using host setting",
			domain.ErrorField(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var payload []byte
	if stored.HasPayload {
		payload = stored.Payload
		if payload == nil {
			payload = []byte{}
		}
	}

	tz, err := resolveIdentity(s.database, stored.Name, payload)
	if err != nil {
		s.logger.Warn(ctx, "Persisted default time zone is no longer resolvable, using host setting",
			domain.ZoneField(stored.Name),
			domain.ErrorField(err))
		return nil, false
	}

	s.logger.Debug(ctx, "Loaded persisted default time zone", domain.ZoneField(tz.Name()))
	return tz, true
}

// detectHostZone asks the database for the host zone, falling back to UTC
func (s *SystemDefaultZoneImpl) detectHostZone(ctx context.Context) *entity.TimeZone {
	name, err := s.database.DetectHostZone()
	if err == nil {
		tz, resolveErr := resolveIdentity(s.database, name, nil)
		if resolveErr == nil {
			s.logger.Debug(ctx, "Detected host time zone", domain.ZoneField(tz.Name()))
			return tz
		}
		err = resolveErr
	}

	s.logger.Warn(ctx, "Failed to detect host time zone, using UTC as fallback",
		domain.ErrorField(err))
	if tz, resolveErr := resolveIdentity(s.database, "UTC", nil); resolveErr == nil {
		return tz
	}
	return utcIdentity()
}
