package usecase

import (
	"context"
	"time"
)

// ExportRequest represents a request to export the zone table
type ExportRequest struct {
	OutputPath string
	At         time.Time
	// Prefix limits the export to zone names starting with it, e.g. "Europe/"
	Prefix string
}

// ExportService defines the interface for exporting zone data
type ExportService interface {
	// ExportZoneTable evaluates every known zone at req.At and writes one row per zone.
	// It returns the number of rows written.
	ExportZoneTable(ctx context.Context, req *ExportRequest) (int, error)
}
