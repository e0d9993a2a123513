package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/infrastructure/logging"
	infrarepo "github.com/ca-srg/tzcore/infrastructure/repository"
)

func TestSystemDefaultZone_Initialization(t *testing.T) {
	ctx := context.Background()
	logger := &logging.NoOpLogger{}

	t.Run("host detected", func(t *testing.T) {
		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), infrarepo.NewMemoryDefaultZoneRepository(), logger)
		assert.Equal(t, "Asia/Tokyo", defaults.Get().Name())
		assert.False(t, defaults.IsOverridden())
	})

	t.Run("persisted override wins", func(t *testing.T) {
		store := infrarepo.NewMemoryDefaultZoneRepository()
		require.NoError(t, store.Save(ctx, repository.StoredDefaultZone{
			Name:       "Europe/Paris",
			Payload:    []byte{1, 2},
			HasPayload: true,
		}))

		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), store, logger)
		assert.Equal(t, "Europe/Paris", defaults.Get().Name())
		assert.Equal(t, []byte{1, 2}, defaults.Get().Payload())
		assert.True(t, defaults.IsOverridden())
	})

	t.Run("unresolvable override falls back to host", func(t *testing.T) {
		store := infrarepo.NewMemoryDefaultZoneRepository()
		require.NoError(t, store.Save(ctx, repository.StoredDefaultZone{Name: "Mars/Olympus_Mons"}))

		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), store, logger)
		assert.Equal(t, "Asia/Tokyo", defaults.Get().Name())
		assert.False(t, defaults.IsOverridden())
	})

	t.Run("load failure falls back to host", func(t *testing.T) {
		store := new(MockDefaultZoneRepository)
		store.On("Load", mock.Anything).Return(repository.StoredDefaultZone{}, false, errStorageUnavailable)

		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), store, logger)
		assert.Equal(t, "Asia/Tokyo", defaults.Get().Name())
		store.AssertExpectations(t)
	})

	t.Run("detection failure falls back to UTC", func(t *testing.T) {
		database := newFakeZoneDatabase("")
		database.hostErr = errors.New("no zoneinfo")

		defaults := NewSystemDefaultZone(ctx, database, infrarepo.NewMemoryDefaultZoneRepository(), logger)
		assert.Equal(t, "UTC", defaults.Get().Name())
	})

	t.Run("unresolvable host zone falls back to UTC", func(t *testing.T) {
		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Nowhere/Special"), infrarepo.NewMemoryDefaultZoneRepository(), logger)
		assert.Equal(t, "UTC", defaults.Get().Name())
	})
}

func TestSystemDefaultZone_SetAndReset(t *testing.T) {
	ctx := context.Background()
	tc := newTestContext(t, "Asia/Tokyo")

	paris := mustIdentity(t, "Europe/Paris")
	require.NoError(t, tc.defaults.Set(ctx, paris))
	assert.Equal(t, "Europe/Paris", tc.defaults.Get().Name())
	assert.True(t, tc.defaults.IsOverridden())

	stored, found, err := tc.store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Europe/Paris", stored.Name)
	assert.False(t, stored.HasPayload)

	require.NoError(t, tc.defaults.ResetToHostDetected(ctx))
	assert.Equal(t, "Asia/Tokyo", tc.defaults.Get().Name())
	assert.False(t, tc.defaults.IsOverridden())

	_, found, err = tc.store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSystemDefaultZone_ResetFollowsHostChanges(t *testing.T) {
	ctx := context.Background()
	tc := newTestContext(t, "Asia/Tokyo")

	tc.database.hostZone = "America/New_York"
	assert.Equal(t, "Asia/Tokyo", tc.defaults.Get().Name())

	require.NoError(t, tc.defaults.ResetToHostDetected(ctx))
	assert.Equal(t, "America/New_York", tc.defaults.Get().Name())
}

func TestSystemDefaultZone_SetFailures(t *testing.T) {
	ctx := context.Background()
	logger := &logging.NoOpLogger{}

	t.Run("nil zone", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		err := tc.defaults.Set(ctx, nil)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))
	})

	t.Run("save failure keeps previous default", func(t *testing.T) {
		store := new(MockDefaultZoneRepository)
		store.On("Load", mock.Anything).Return(repository.StoredDefaultZone{}, false, nil)
		store.On("Save", mock.Anything, mock.Anything).Return(errStorageUnavailable)

		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), store, logger)
		err := defaults.Set(ctx, mustIdentity(t, "Europe/Paris"))

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeRepository))
		assert.True(t, errors.Is(err, errStorageUnavailable))
		assert.Equal(t, "Asia/Tokyo", defaults.Get().Name())
		store.AssertExpectations(t)
	})

	t.Run("clear failure keeps override", func(t *testing.T) {
		store := new(MockDefaultZoneRepository)
		store.On("Load", mock.Anything).Return(repository.StoredDefaultZone{Name: "Europe/Paris"}, true, nil)
		store.On("Clear", mock.Anything).Return(errStorageUnavailable)

		defaults := NewSystemDefaultZone(ctx, newFakeZoneDatabase("Asia/Tokyo"), store, logger)
		err := defaults.ResetToHostDetected(ctx)

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeRepository))
		assert.Equal(t, "Europe/Paris", defaults.Get().Name())
		assert.True(t, defaults.IsOverridden())
	})
}
