package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/config"
	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/repository/memory"
	"github.com/smartcity/trafficboard/internal/repository/sqlite"
)

func openTestCatalog(t *testing.T, cfg *config.Config) domain.AreaRepository {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo, closeRepo := openCatalog(ctx, cfg, zap.NewNop())
	t.Cleanup(closeRepo)
	return repo
}

func TestOpenCatalogDefaultsToMemory(t *testing.T) {
	repo := openTestCatalog(t, &config.Config{})
	assert.IsType(t, &memory.Repository{}, repo)
}

func TestOpenCatalogSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	repo := openTestCatalog(t, &config.Config{SQLitePath: path})
	require.IsType(t, &sqlite.Repository{}, repo)

	areas, err := repo.ListAreas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BangaloreAreas, areas)
}

func TestOpenCatalogSQLiteBadSchemaFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE areas (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo := openTestCatalog(t, &config.Config{SQLitePath: path})
	require.IsType(t, &memory.Repository{}, repo)

	areas, err := repo.ListAreas(context.Background())
	require.NoError(t, err)
	assert.Contains(t, areas, "Hebbal")
}

func TestOpenCatalogPostgresUnreachableFallsBack(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "postgres://trafficboard@127.0.0.1:1/trafficboard?connect_timeout=1"}
	repo := openTestCatalog(t, cfg)
	assert.IsType(t, &memory.Repository{}, repo)
}
