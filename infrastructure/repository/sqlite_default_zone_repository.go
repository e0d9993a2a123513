package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	_ "github.com/mattn/go-sqlite3"
)

const defaultZoneSchema = `
CREATE TABLE IF NOT EXISTS default_zone (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	name        TEXT    NOT NULL,
	payload     BLOB,
	has_payload INTEGER NOT NULL DEFAULT 0,
	updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteDefaultZoneRepository stores the system default override in a single-row SQLite table
type SQLiteDefaultZoneRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteDefaultZoneRepository opens (creating if needed) the database at dbPath
func NewSQLiteDefaultZoneRepository(dbPath string) (*SQLiteDefaultZoneRepository, error) {
	if dbPath == "" {
		return nil, domain.ErrInvalidInput("dbPath", "database path cannot be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, domain.ErrRepository("OpenDefaultZoneDB", err).
				WithDetails("path", dbPath)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, domain.ErrRepository("OpenDefaultZoneDB", err).
			WithDetails("path", dbPath)
	}
	// sqlite3 allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(defaultZoneSchema); err != nil {
		_ = db.Close()
		return nil, domain.ErrRepository("MigrateDefaultZoneDB", err).
			WithDetails("path", dbPath)
	}

	return &SQLiteDefaultZoneRepository{db: db, path: dbPath}, nil
}

// Load implements repository.DefaultZoneRepository
func (r *SQLiteDefaultZoneRepository) Load(ctx context.Context) (repository.StoredDefaultZone, bool, error) {
	var (
		stored     repository.StoredDefaultZone
		payload    []byte
		hasPayload int
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT name, payload, has_payload FROM default_zone WHERE id = 1").
		Scan(&stored.Name, &payload, &hasPayload)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.StoredDefaultZone{}, false, nil
	}
	if err != nil {
		return repository.StoredDefaultZone{}, false, domain.ErrRepository("LoadDefaultZone", err).
			WithDetails("path", r.path)
	}

	if hasPayload != 0 {
		stored.HasPayload = true
		stored.Payload = payload
		if stored.Payload == nil {
			stored.Payload = []byte{}
		}
	}

	return stored, true, nil
}

// Save implements repository.DefaultZoneRepository
func (r *SQLiteDefaultZoneRepository) Save(ctx context.Context, zone repository.StoredDefaultZone) error {
	if zone.Name == "" {
		return domain.ErrInvalidInput("name", "stored default zone needs a name")
	}

	var payload []byte
	hasPayload := 0
	if zone.HasPayload {
		payload = zone.Payload
		if payload == nil {
			payload = []byte{}
		}
		hasPayload = 1
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO default_zone (id, name, payload, has_payload, updated_at)
VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	payload = excluded.payload,
	has_payload = excluded.has_payload,
	updated_at = excluded.updated_at`,
		zone.Name, payload, hasPayload)
	if err != nil {
		return domain.ErrRepository("SaveDefaultZone", err).
			WithDetails("path", r.path)
	}
	return nil
}

// Clear implements repository.DefaultZoneRepository
func (r *SQLiteDefaultZoneRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM default_zone"); err != nil {
		return domain.ErrRepository("ClearDefaultZone", err).
			WithDetails("path", r.path)
	}
	return nil
}

// Close implements repository.DefaultZoneRepository
func (r *SQLiteDefaultZoneRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close default zone database: %w", err)
	}
	return nil
}
