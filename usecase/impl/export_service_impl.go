package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// ExportServiceImpl implements ExportService
type ExportServiceImpl struct {
	service usecase.TimeZoneService
	writer  repository.ZoneTableWriter
	logger  domain.Logger
}

// NewExportService creates a new export service
func NewExportService(
	service usecase.TimeZoneService,
	writer repository.ZoneTableWriter,
	logger domain.Logger,
) (usecase.ExportService, error) {
	if service == nil {
		return nil, fmt.Errorf("time zone service is required")
	}
	if writer == nil {
		return nil, fmt.Errorf("zone table writer is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &ExportServiceImpl{
		service: service,
		writer:  writer,
		logger:  logger,
	}, nil
}

// ExportZoneTable exports every known zone matching req.Prefix
func (s *ExportServiceImpl) ExportZoneTable(ctx context.Context, req *usecase.ExportRequest) (int, error) {
	// Validate request
	if req == nil {
		return 0, fmt.Errorf("export request is required")
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}

	s.logger.Info(ctx, "Exporting zone table",
		domain.NewField("at", at.UTC().Format(time.RFC3339)),
		domain.NewField("prefix", req.Prefix))

	var rows []*entity.ZoneSnapshot
	for _, name := range s.service.KnownZoneNames() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if !strings.HasPrefix(name, req.Prefix) {
			continue
		}

		zone, err := s.service.Construct(name)
		if err != nil {
			// A listed name that no longer resolves is skipped rather than failing the export
			s.logger.Warn(ctx, "Skipping unresolvable zone", domain.ZoneField(name), domain.ErrorField(err))
			continue
		}
		rows = append(rows, snapshotZone(zone, at))
	}

	if len(rows) == 0 {
		return 0, domain.ErrInvalidInput("prefix", fmt.Sprintf("no known zone starts with %q", req.Prefix))
	}

	if err := s.writer.Write(rows, req.OutputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func snapshotZone(zone usecase.Zone, at time.Time) *entity.ZoneSnapshot {
	snapshot := &entity.ZoneSnapshot{
		Name:           zone.Name(),
		At:             at,
		SecondsFromUTC: zone.SecondsFromUTC(at),
		IsDST:          zone.IsDaylightSavingTime(at),
		DSTOffset:      zone.DaylightSavingTimeOffset(at),
	}
	if abbreviation, ok := zone.Abbreviation(at); ok {
		snapshot.Abbreviation = abbreviation
	}
	if next, ok := zone.NextTransition(at); ok {
		snapshot.NextTransition = &next
	}
	return snapshot
}
