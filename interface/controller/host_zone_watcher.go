package controller

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// HostZoneWatcher polls the host zone probe and publishes a
// SystemTimeZoneDidChange event to its subscribers whenever the detected
// zone differs from the previous poll. When the system default has not been
// explicitly overridden it is re-derived before subscribers are told, so the
// local zone answers with the new host zone by the time they re-query.
type HostZoneWatcher struct {
	database repository.ZoneDatabase
	service  usecase.TimeZoneService
	defaults usecase.SystemDefaultZone
	interval time.Duration
	logger   domain.Logger
	now      func() time.Time

	mu       sync.Mutex
	handlers map[uint64]repository.HostZoneHandler
	nextID   uint64
	last     string
	primed   bool
}

// NewHostZoneWatcher creates a watcher polling every interval
func NewHostZoneWatcher(
	database repository.ZoneDatabase,
	service usecase.TimeZoneService,
	defaults usecase.SystemDefaultZone,
	interval time.Duration,
	logger domain.Logger,
) *HostZoneWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &HostZoneWatcher{
		database: database,
		service:  service,
		defaults: defaults,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		handlers: make(map[uint64]repository.HostZoneHandler),
	}
}

// Subscribe implements repository.HostZoneNotifier
func (w *HostZoneWatcher) Subscribe(handler repository.HostZoneHandler) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.handlers, id)
			w.mu.Unlock()
		})
	}
}

// Interval returns the polling interval
func (w *HostZoneWatcher) Interval() time.Duration {
	return w.interval
}

// Run polls until ctx is cancelled. The first poll only records the current host zone.
func (w *HostZoneWatcher) Run(ctx context.Context) error {
	w.logger.Info(ctx, "Watching host time zone", domain.NewField("interval", w.interval.String()))
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Host time zone watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll probes the host once and publishes an event if the zone changed since
// the previous poll. It reports whether an event was published.
func (w *HostZoneWatcher) Poll(ctx context.Context) bool {
	current, err := w.database.DetectHostZone()
	if err != nil {
		w.logger.Warn(ctx, "Host time zone probe failed", domain.ErrorField(err))
		return false
	}

	w.mu.Lock()
	previous, primed := w.last, w.primed
	w.last, w.primed = current, true
	w.mu.Unlock()

	if !primed || previous == current {
		return false
	}

	w.logger.Info(ctx, "Host time zone changed",
		domain.NewField("previous", previous),
		domain.ZoneField(current))

	if !w.defaults.IsOverridden() {
		if err := w.service.ResetSystemDefault(ctx); err != nil {
			w.logger.Error(ctx, "Failed to refresh system default after host change", domain.ErrorField(err))
		}
	}

	w.publish(repository.HostZoneEvent{
		Name:         repository.SystemTimeZoneDidChange,
		PreviousZone: previous,
		CurrentZone:  current,
		ObservedAt:   w.now(),
	})
	return true
}

// publish calls handlers in subscription order outside the lock
func (w *HostZoneWatcher) publish(event repository.HostZoneEvent) {
	w.mu.Lock()
	ids := make([]uint64, 0, len(w.handlers))
	for id := range w.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]repository.HostZoneHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, w.handlers[id])
	}
	w.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
