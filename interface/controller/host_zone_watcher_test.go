package controller

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/infrastructure/localization"
	"github.com/ca-srg/tzcore/infrastructure/logging"
	infrarepo "github.com/ca-srg/tzcore/infrastructure/repository"
	"github.com/ca-srg/tzcore/infrastructure/zonedb"
	"github.com/ca-srg/tzcore/usecase/impl"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

type watcherFixture struct {
	hostZone atomic.Value
	service  usecase.TimeZoneService
	defaults usecase.SystemDefaultZone
	watcher  *HostZoneWatcher
}

func newWatcherFixture(t *testing.T, initial string) *watcherFixture {
	t.Helper()

	f := &watcherFixture{}
	f.hostZone.Store(initial)

	dir := t.TempDir()
	logger := &logging.NoOpLogger{}
	probe := zonedb.NewHostProbe(logger,
		zonedb.WithEnvLookup(func(key string) string {
			if key == "TZ" {
				return f.hostZone.Load().(string)
			}
			return ""
		}),
		zonedb.WithLocaltimePath(filepath.Join(dir, "localtime")),
		zonedb.WithTimezoneFile(filepath.Join(dir, "timezone")),
		zonedb.WithProcessLocal(func() string { return "Local" }),
	)
	database := zonedb.NewStdlibDatabase(probe)

	ctx := context.Background()
	defaults := impl.NewSystemDefaultZone(ctx, database, infrarepo.NewMemoryDefaultZoneRepository(), logger)
	registry := impl.NewAbbreviationRegistry(database, logger)
	resolver := impl.NewOffsetResolver(localization.NewBasicLocalizer())

	f.defaults = defaults
	f.service = impl.NewTimeZoneService(database, registry, defaults, resolver, logger)
	f.watcher = NewHostZoneWatcher(database, f.service, defaults, time.Millisecond, logger)
	return f
}

func TestHostZoneWatcher_PublishesChanges(t *testing.T) {
	f := newWatcherFixture(t, "Europe/Paris")
	ctx := context.Background()
	local := f.service.Local()
	assert.Equal(t, "Europe/Paris", local.Name())

	var events []repository.HostZoneEvent
	unsubscribe := f.watcher.Subscribe(func(event repository.HostZoneEvent) {
		// the default is refreshed before subscribers run
		assert.Equal(t, event.CurrentZone, local.Name())
		events = append(events, event)
	})

	assert.False(t, f.watcher.Poll(ctx), "first poll only primes")
	assert.False(t, f.watcher.Poll(ctx), "no change")

	f.hostZone.Store("Asia/Tokyo")
	assert.True(t, f.watcher.Poll(ctx))
	require.Len(t, events, 1)
	assert.Equal(t, repository.SystemTimeZoneDidChange, events[0].Name)
	assert.Equal(t, "Europe/Paris", events[0].PreviousZone)
	assert.Equal(t, "Asia/Tokyo", events[0].CurrentZone)
	assert.False(t, events[0].ObservedAt.IsZero())
	assert.Equal(t, 32400, local.SecondsFromUTC(time.Now()))

	unsubscribe()
	unsubscribe()
	f.hostZone.Store("America/New_York")
	assert.True(t, f.watcher.Poll(ctx))
	assert.Len(t, events, 1, "unsubscribed handlers are not called")
	assert.Equal(t, "America/New_York", local.Name())
}

func TestHostZoneWatcher_KeepsExplicitOverride(t *testing.T) {
	f := newWatcherFixture(t, "Europe/Paris")
	ctx := context.Background()

	utc, err := f.service.Construct("UTC")
	require.NoError(t, err)
	require.NoError(t, f.service.SetSystemDefault(ctx, utc))

	var received int
	f.watcher.Subscribe(func(repository.HostZoneEvent) { received++ })

	f.watcher.Poll(ctx)
	f.hostZone.Store("Asia/Tokyo")
	assert.True(t, f.watcher.Poll(ctx))

	assert.Equal(t, 1, received)
	assert.True(t, f.defaults.IsOverridden())
	assert.Equal(t, "UTC", f.service.Local().Name())
}

func TestHostZoneWatcher_ProbeFailureIsNotAChange(t *testing.T) {
	f := newWatcherFixture(t, "Europe/Paris")
	ctx := context.Background()

	f.watcher.Poll(ctx)
	f.hostZone.Store("Not/AZone")
	assert.False(t, f.watcher.Poll(ctx))

	f.hostZone.Store("Europe/Paris")
	assert.False(t, f.watcher.Poll(ctx), "recovering to the same zone is not a change")
}

func TestHostZoneWatcher_Run(t *testing.T) {
	f := newWatcherFixture(t, "Europe/Paris")
	ctx, cancel := context.WithCancel(context.Background())

	changed := make(chan repository.HostZoneEvent, 1)
	var once sync.Once
	f.watcher.Subscribe(func(event repository.HostZoneEvent) {
		once.Do(func() { changed <- event })
	})

	done := make(chan error, 1)
	go func() { done <- f.watcher.Run(ctx) }()

	// let the first poll prime before changing the host zone
	require.Eventually(t, func() bool {
		f.watcher.mu.Lock()
		defer f.watcher.mu.Unlock()
		return f.watcher.primed
	}, time.Second, time.Millisecond)
	f.hostZone.Store("Australia/Sydney")

	select {
	case event := <-changed:
		assert.Equal(t, "Australia/Sydney", event.CurrentZone)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNewHostZoneWatcher_DefaultInterval(t *testing.T) {
	w := NewHostZoneWatcher(nil, nil, nil, 0, &logging.NoOpLogger{})
	assert.Equal(t, 5*time.Second, w.Interval())
}
