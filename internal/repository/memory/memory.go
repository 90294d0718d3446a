package memory

import (
	"context"

	"github.com/smartcity/trafficboard/internal/domain"
)

// DefaultHotspots is the heatmap sample served when no database is configured
var DefaultHotspots = []domain.Hotspot{
	{Area: "BTM Layout", Incidents: 9, Percent: 82},
	{Area: "Whitefield", Incidents: 7, Percent: 65},
	{Area: "Electronic City", Incidents: 10, Percent: 91},
	{Area: "Majestic", Incidents: 6, Percent: 55},
	{Area: "KR Puram", Incidents: 8, Percent: 78},
	{Area: "Yelahanka", Incidents: 4, Percent: 34},
	{Area: "Banashankari", Incidents: 5, Percent: 42},
	{Area: "Hebbal", Incidents: 9, Percent: 80},
	{Area: "Silk Board", Incidents: 11, Percent: 95},
	{Area: "Koramangala", Incidents: 7, Percent: 63},
}

// Repository implements domain.AreaRepository from in-process data.
// It is the fallback when no database is available.
type Repository struct {
	areas    []domain.AreaName
	hotspots []domain.Hotspot
}

// NewRepository creates a repository over the built-in catalog
func NewRepository() *Repository {
	return NewRepositoryWith(domain.BangaloreAreas, DefaultHotspots)
}

// NewRepositoryWith creates a repository over the given data
func NewRepositoryWith(areas []domain.AreaName, hotspots []domain.Hotspot) *Repository {
	return &Repository{
		areas:    domain.NormalizeAreas(areas),
		hotspots: append([]domain.Hotspot(nil), hotspots...),
	}
}

// ListAreas returns a copy of the catalog
func (r *Repository) ListAreas(ctx context.Context) ([]domain.AreaName, error) {
	return append([]domain.AreaName(nil), r.areas...), nil
}

// GetHotspots returns a copy of the hotspots
func (r *Repository) GetHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	return append([]domain.Hotspot(nil), r.hotspots...), nil
}

// Health always returns nil
func (r *Repository) Health(ctx context.Context) error {
	return nil
}
