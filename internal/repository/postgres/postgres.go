package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartcity/trafficboard/internal/domain"
)

// PostgresRepository implements domain.AreaRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the catalog tables and inserts any missing seed rows
func (r *PostgresRepository) Migrate(ctx context.Context, seedAreas []domain.AreaName, seedHotspots []domain.Hotspot) error {
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
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: failed to create schema: %w", err)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, name := range seedAreas {
		if _, err := tx.Exec(ctx, `INSERT INTO areas (name) VALUES ($1) ON CONFLICT DO NOTHING`, name); err != nil {
			return fmt.Errorf("postgres: failed to seed area %q: %w", name, err)
		}
	}
	for i, h := range seedHotspots {
		_, err := tx.Exec(ctx,
			`INSERT INTO hotspots (area, incidents, percent, position) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			h.Area, h.Incidents, h.Percent, i,
		)
		if err != nil {
			return fmt.Errorf("postgres: failed to seed hotspot %q: %w", h.Area, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit seed: %w", err)
	}
	return nil
}

// ListAreas retrieves the area catalog from PostgreSQL
func (r *PostgresRepository) ListAreas(ctx context.Context) ([]domain.AreaName, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM areas`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query areas: %w", err)
	}
	defer rows.Close()

	var names []domain.AreaName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan area row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read areas: %w", err)
	}

	// Sort in Go so ordering does not depend on the database collation
	return domain.NormalizeAreas(names), nil
}

// GetHotspots retrieves the heatmap hotspots from PostgreSQL
func (r *PostgresRepository) GetHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	query := `
		SELECT area, incidents, percent
		FROM hotspots
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query hotspots: %w", err)
	}
	defer rows.Close()

	var results []domain.Hotspot
	for rows.Next() {
		var h domain.Hotspot
		if err := rows.Scan(&h.Area, &h.Incidents, &h.Percent); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan hotspot row: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read hotspots: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
