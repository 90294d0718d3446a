package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartcity/trafficboard/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements domain.AreaRepository on an embedded SQLite file
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate creates the catalog tables and inserts any missing seed rows
func (r *Repository) Migrate(ctx context.Context, seedAreas []domain.AreaName, seedHotspots []domain.Hotspot) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS areas (
			name TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS hotspots (
			area      TEXT PRIMARY KEY,
			incidents INTEGER NOT NULL,
			percent   INTEGER NOT NULL,
			position  INTEGER NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: failed to create schema: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, name := range seedAreas {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO areas (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("sqlite: failed to seed area %q: %w", name, err)
		}
	}
	for i, h := range seedHotspots {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO hotspots (area, incidents, percent, position) VALUES (?, ?, ?, ?)`,
			h.Area, h.Incidents, h.Percent, i,
		)
		if err != nil {
			return fmt.Errorf("sqlite: failed to seed hotspot %q: %w", h.Area, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit seed: %w", err)
	}
	return nil
}

// ListAreas returns the area catalog
func (r *Repository) ListAreas(ctx context.Context) ([]domain.AreaName, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM areas`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query areas: %w", err)
	}
	defer rows.Close()

	var names []domain.AreaName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan area row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to read areas: %w", err)
	}

	return domain.NormalizeAreas(names), nil
}

// GetHotspots returns the heatmap hotspots in insertion order
func (r *Repository) GetHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT area, incidents, percent FROM hotspots ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query hotspots: %w", err)
	}
	defer rows.Close()

	var results []domain.Hotspot
	for rows.Next() {
		var h domain.Hotspot
		if err := rows.Scan(&h.Area, &h.Incidents, &h.Percent); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan hotspot row: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to read hotspots: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}
