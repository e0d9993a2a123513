package repository

import "github.com/ca-srg/tzcore/domain/entity"

// ZoneTableWriter persists a zone table export
type ZoneTableWriter interface {
	// Write writes rows to outputPath, replacing any existing file
	Write(rows []*entity.ZoneSnapshot, outputPath string) error
}
