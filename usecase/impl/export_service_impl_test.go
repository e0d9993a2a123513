package impl

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/infrastructure/logging"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// MockZoneTableWriter is a mock implementation of ZoneTableWriter
type MockZoneTableWriter struct {
	mock.Mock
}

func (m *MockZoneTableWriter) Write(rows []*entity.ZoneSnapshot, outputPath string) error {
	args := m.Called(rows, outputPath)
	return args.Error(0)
}

func TestNewExportService(t *testing.T) {
	tc := newTestContext(t, "UTC")
	logger := &logging.NoOpLogger{}

	_, err := NewExportService(nil, &MockZoneTableWriter{}, logger)
	assert.Error(t, err)
	_, err = NewExportService(tc.service, nil, logger)
	assert.Error(t, err)
	_, err = NewExportService(tc.service, &MockZoneTableWriter{}, nil)
	assert.Error(t, err)
}

func TestExportService_ExportZoneTable(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	output := filepath.Join(t.TempDir(), "zones.csv")

	t.Run("all zones", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		writer := &MockZoneTableWriter{}
		var written []*entity.ZoneSnapshot
		writer.On("Write", mock.Anything, output).Run(func(args mock.Arguments) {
			written = args.Get(0).([]*entity.ZoneSnapshot)
		}).Return(nil)

		service, err := NewExportService(tc.service, writer, &logging.NoOpLogger{})
		require.NoError(t, err)

		count, err := service.ExportZoneTable(ctx, &usecase.ExportRequest{OutputPath: output, At: at})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		require.Len(t, written, 3)

		newYork := written[0]
		assert.Equal(t, "America/New_York", newYork.Name)
		assert.Equal(t, -14400, newYork.SecondsFromUTC)
		assert.Equal(t, "EDT", newYork.Abbreviation)
		assert.True(t, newYork.IsDST)
		assert.Equal(t, 3600, newYork.DSTOffset)
		require.NotNil(t, newYork.NextTransition)
		assert.Equal(t, time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC), newYork.NextTransition.UTC())

		tokyo := written[1]
		assert.Equal(t, 32400, tokyo.SecondsFromUTC)
		assert.Nil(t, tokyo.NextTransition)
		writer.AssertExpectations(t)
	})

	t.Run("prefix filter", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		writer := &MockZoneTableWriter{}
		writer.On("Write", mock.MatchedBy(func(rows []*entity.ZoneSnapshot) bool {
			return len(rows) == 1 && rows[0].Name == "Europe/Paris"
		}), output).Return(nil)

		service, err := NewExportService(tc.service, writer, &logging.NoOpLogger{})
		require.NoError(t, err)

		count, err := service.ExportZoneTable(ctx, &usecase.ExportRequest{OutputPath: output, At: at, Prefix: "Europe/"})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		writer.AssertExpectations(t)
	})

	t.Run("no match", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		writer := &MockZoneTableWriter{}
		service, err := NewExportService(tc.service, writer, &logging.NoOpLogger{})
		require.NoError(t, err)

		_, err = service.ExportZoneTable(ctx, &usecase.ExportRequest{OutputPath: output, Prefix: "Atlantis/"})
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))
		writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	})

	t.Run("writer failure", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		writer := &MockZoneTableWriter{}
		writer.On("Write", mock.Anything, output).Return(errors.New("disk full"))

		service, err := NewExportService(tc.service, writer, &logging.NoOpLogger{})
		require.NoError(t, err)

		_, err = service.ExportZoneTable(ctx, &usecase.ExportRequest{OutputPath: output, At: at})
		assert.EqualError(t, err, "disk full")
	})

	t.Run("nil request", func(t *testing.T) {
		tc := newTestContext(t, "UTC")
		service, err := NewExportService(tc.service, &MockZoneTableWriter{}, &logging.NoOpLogger{})
		require.NoError(t, err)
		_, err = service.ExportZoneTable(ctx, nil)
		assert.Error(t, err)
	})
}
