package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/generator"
)

// TrafficService serves synthetic traffic metrics for catalog areas
type TrafficService struct {
	repo   AreaRepository
	logger *zap.Logger
}

// NewTrafficService creates a new traffic service
func NewTrafficService(repo AreaRepository, logger *zap.Logger) *TrafficService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrafficService{repo: repo, logger: logger}
}

// Areas returns the area catalog
func (s *TrafficService) Areas(ctx context.Context) ([]domain.AreaName, error) {
	areas, err := s.repo.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("traffic: failed to list areas: %w", err)
	}
	return areas, nil
}

// Hotspots returns the heatmap hotspots
func (s *TrafficService) Hotspots(ctx context.Context) ([]domain.Hotspot, error) {
	spots, err := s.repo.GetHotspots(ctx)
	if err != nil {
		return nil, fmt.Errorf("traffic: failed to load hotspots: %w", err)
	}
	return spots, nil
}

// Snapshot returns headline metrics for a catalog area
func (s *TrafficService) Snapshot(ctx context.Context, area domain.AreaName) (domain.MetricSnapshot, error) {
	if err := s.checkArea(ctx, area); err != nil {
		return domain.MetricSnapshot{}, err
	}
	return generator.Snapshot(area), nil
}

// Hourly returns the daily congestion curve for a catalog area
func (s *TrafficService) Hourly(ctx context.Context, area domain.AreaName) ([]domain.HourlyPoint, error) {
	if err := s.checkArea(ctx, area); err != nil {
		return nil, err
	}
	return generator.Hourly(area), nil
}

// Vehicles returns the vehicle-type distribution for a catalog area
func (s *TrafficService) Vehicles(ctx context.Context, area domain.AreaName) ([]domain.VehicleTypeCount, error) {
	if err := s.checkArea(ctx, area); err != nil {
		return nil, err
	}
	return generator.VehicleDistribution(area), nil
}

// Weekly returns the weekly trend for a catalog area
func (s *TrafficService) Weekly(ctx context.Context, area domain.AreaName) ([]domain.WeeklyPoint, error) {
	if err := s.checkArea(ctx, area); err != nil {
		return nil, err
	}
	return generator.Weekly(area), nil
}

// Report returns every metric family for a catalog area
func (s *TrafficService) Report(ctx context.Context, area domain.AreaName) (domain.AreaReport, error) {
	if err := s.checkArea(ctx, area); err != nil {
		return domain.AreaReport{}, err
	}
	return generator.Report(area), nil
}

// Health checks the catalog backend
func (s *TrafficService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

func (s *TrafficService) checkArea(ctx context.Context, area domain.AreaName) error {
	areas, err := s.Areas(ctx)
	if err != nil {
		return err
	}
	if !domain.ContainsArea(areas, area) {
		s.logger.Debug("area not in catalog", zap.String("area", area))
		return fmt.Errorf("traffic: %q: %w", area, domain.ErrUnknownArea)
	}
	return nil
}
