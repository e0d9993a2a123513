package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/repository"
)

var csvHeader = []string{"zone", "at", "seconds_from_utc", "abbreviation", "is_dst", "dst_offset", "next_transition"}

// CSVWriterRepositoryImpl implements ZoneTableWriter
type CSVWriterRepositoryImpl struct {
	logger domain.Logger
}

// NewCSVWriterRepository creates a new CSV writer repository
func NewCSVWriterRepository(logger domain.Logger) repository.ZoneTableWriter {
	return &CSVWriterRepositoryImpl{
		logger: logger,
	}
}

// Write writes zone snapshots to a CSV file
func (r *CSVWriterRepositoryImpl) Write(rows []*entity.ZoneSnapshot, outputPath string) error {
	// Validate output path
	if err := r.validateOutputPath(outputPath); err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.ErrFileOperationWithCause("create directory", dir, err)
	}

	// Create file with restricted permissions
	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return domain.ErrFileOperationWithCause("create file", outputPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			r.logger.Error(context.TODO(), "Failed to close CSV file",
				domain.ErrorField(closeErr),
				domain.NewField("path", outputPath))
		}
	}()

	// UTF-8 BOM so spreadsheet tools pick the right encoding
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return domain.ErrCSVExportWithCause("write BOM", "failed to write UTF-8 BOM", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return domain.ErrCSVExportWithCause("write header", "failed to write CSV header", err)
	}

	for _, row := range rows {
		next := ""
		if row.NextTransition != nil {
			next = row.NextTransition.UTC().Format(time.RFC3339)
		}
		record := []string{
			sanitizeCSVField(row.Name),
			row.At.UTC().Format(time.RFC3339),
			strconv.Itoa(row.SecondsFromUTC),
			sanitizeCSVField(row.Abbreviation),
			strconv.FormatBool(row.IsDST),
			strconv.Itoa(row.DSTOffset),
			next,
		}
		if err := writer.Write(record); err != nil {
			return domain.ErrCSVExportWithCause("write record", "failed to write zone "+row.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return domain.ErrCSVExportWithCause("flush", "failed to flush CSV writer", err)
	}

	r.logger.Info(context.TODO(), "CSV export completed",
		domain.NewField("outputPath", outputPath),
		domain.NewField("rows", len(rows)))

	return nil
}

// validateOutputPath validates the output path for security
func (r *CSVWriterRepositoryImpl) validateOutputPath(path string) error {
	if path == "" {
		return domain.ErrInvalidInput("outputPath", "must not be empty")
	}

	// Check for directory traversal attempts before cleaning resolves them
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return domain.ErrPathTraversal(path)
		}
	}
	cleanPath := filepath.Clean(path)

	// Ensure it's not an absolute path to system directories
	if filepath.IsAbs(cleanPath) && !isTempPath(cleanPath) {
		systemDirs := []string{"/etc", "/usr", "/bin", "/sbin", "/var", "/proc", "/sys", "/dev"}
		for _, dir := range systemDirs {
			if cleanPath == dir || strings.HasPrefix(cleanPath, dir+"/") {
				return domain.ErrSystemDirectory(path)
			}
		}
	}

	// Check for hidden files (starting with .)
	base := filepath.Base(cleanPath)
	if strings.HasPrefix(base, ".") && base != "." {
		return domain.ErrFileOperation("validatePath", path, "cannot write to hidden files")
	}

	// Ensure the file has .csv extension
	if filepath.Ext(cleanPath) != ".csv" {
		return domain.ErrInvalidInput("outputPath", "file must have .csv extension")
	}

	return nil
}

func isTempPath(path string) bool {
	return strings.HasPrefix(path, "/tmp/") ||
		strings.HasPrefix(path, "/var/folders/") ||
		strings.HasPrefix(path, filepath.Clean(os.TempDir())+string(filepath.Separator))
}

// sanitizeCSVField prefixes values a spreadsheet would evaluate as a formula
func sanitizeCSVField(field string) string {
	for _, char := range []string{"=", "+", "-", "@", "\t", "\r", "|"} {
		if strings.HasPrefix(field, char) {
			return "'" + field
		}
	}
	return field
}
