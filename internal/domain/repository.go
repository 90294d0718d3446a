package domain

import "context"

// AreaRepository defines read access to the area catalog.
// The domain owns the interface; storage backends implement it.
type AreaRepository interface {
	// ListAreas returns the catalog, sorted and unique
	ListAreas(ctx context.Context) ([]AreaName, error)

	// GetHotspots returns the congestion hotspots for the heatmap
	GetHotspots(ctx context.Context) ([]Hotspot, error)

	// Health checks backend connectivity
	Health(ctx context.Context) error
}
