package impl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
	"github.com/ca-srg/tzcore/infrastructure/logging"
	infrarepo "github.com/ca-srg/tzcore/infrastructure/repository"
)

// fakeZoneDatabase resolves names through the embedded tzdata
type fakeZoneDatabase struct {
	hostZone      string
	hostErr       error
	abbreviations map[string]string
}

func newFakeZoneDatabase(hostZone string) *fakeZoneDatabase {
	return &fakeZoneDatabase{
		hostZone: hostZone,
		abbreviations: map[string]string{
			"EST": "America/New_York",
			"JST": "Asia/Tokyo",
			"CET": "Europe/Paris",
		},
	}
}

func (d *fakeZoneDatabase) Resolve(name string) (*repository.ZoneRules, error) {
	if offset, ok := valueobject.ParseFixedOffsetName(name); ok {
		loc := time.FixedZone(name, offset)
		return &repository.ZoneRules{Name: name, Location: loc, Fingerprint: valueobject.RulesFingerprint(loc)}, nil
	}
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("unknown time zone %s", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &repository.ZoneRules{Name: name, Location: loc, Fingerprint: valueobject.RulesFingerprint(loc)}, nil
}

func (d *fakeZoneDatabase) KnownZoneNames() []string {
	return []string{"America/New_York", "Asia/Tokyo", "Europe/Paris"}
}

func (d *fakeZoneDatabase) AbbreviationTable() map[string]string {
	return copyMapping(d.abbreviations)
}

func (d *fakeZoneDatabase) DetectHostZone() (string, error) {
	if d.hostErr != nil {
		return "", d.hostErr
	}
	return d.hostZone, nil
}

func (d *fakeZoneDatabase) Version() string {
	return "test"
}

// MockDefaultZoneRepository is a mock implementation of DefaultZoneRepository
type MockDefaultZoneRepository struct {
	mock.Mock
}

func (m *MockDefaultZoneRepository) Load(ctx context.Context) (repository.StoredDefaultZone, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.StoredDefaultZone), args.Bool(1), args.Error(2)
}

func (m *MockDefaultZoneRepository) Save(ctx context.Context, zone repository.StoredDefaultZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockDefaultZoneRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDefaultZoneRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

var errStorageUnavailable = errors.New("storage unavailable")

type testContext struct {
	database *fakeZoneDatabase
	store    repository.DefaultZoneRepository
	defaults *SystemDefaultZoneImpl
	registry *AbbreviationRegistryImpl
	service  *TimeZoneServiceImpl
	codec    *ArchivalCodecImpl
}

func newTestContext(t *testing.T, hostZone string) *testContext {
	t.Helper()

	ctx := context.Background()
	logger := &logging.NoOpLogger{}
	database := newFakeZoneDatabase(hostZone)
	store := infrarepo.NewMemoryDefaultZoneRepository()
	defaults := NewSystemDefaultZone(ctx, database, store, logger)
	registry := NewAbbreviationRegistry(database, logger)
	service := NewTimeZoneService(database, registry, defaults, NewOffsetResolver(nil), logger)
	codec, ok := NewArchivalCodec(service).(*ArchivalCodecImpl)
	require.True(t, ok)

	return &testContext{
		database: database,
		store:    store,
		defaults: defaults,
		registry: registry,
		service:  service,
		codec:    codec,
	}
}
