package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/domain"
)

// ChartView pairs a rendered chart with the slot it occupies on the page
type ChartView struct {
	Slot   string                 `json:"slot"`
	Kind   domain.ChartKind       `json:"kind"`
	Handle domain.ChartHandle     `json:"-"`
	ID     string                 `json:"id"`
	Data   domain.CategoricalData `json:"data"`
	Config any                    `json:"config,omitempty"`
}

// Selection is the dashboard state after an area is chosen
type Selection struct {
	Area     domain.AreaName       `json:"area"`
	Snapshot domain.MetricSnapshot `json:"snapshot"`
	Charts   []ChartView           `json:"charts"`
}

// Chart slots on the analytics page
const (
	SlotCongestion = "congestionChart"
	SlotVehicle    = "vehicleChart"
	SlotWeekly     = "weeklyChart"
)

// DashboardService owns the selected area and the charts drawn for it.
// Selecting a new area disposes the previous charts before rendering new ones.
type DashboardService struct {
	trafficSvc *TrafficService
	renderer   domain.ChartRenderer
	logger     *zap.Logger

	mu      sync.Mutex
	current *Selection
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	trafficSvc *TrafficService,
	renderer domain.ChartRenderer,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		trafficSvc: trafficSvc,
		renderer:   renderer,
		logger:     logger,
	}
}

// Select makes area the current selection and renders its three charts
func (s *DashboardService) Select(ctx context.Context, area domain.AreaName) (Selection, error) {
	report, err := s.trafficSvc.Report(ctx, area)
	if err != nil {
		return Selection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if err := disposeAll(s.current.Charts); err != nil {
			s.logger.Warn("failed to dispose previous charts", zap.String("area", s.current.Area), zap.Error(err))
		}
		s.current = nil
	}

	hourly := domain.CategoricalData{Title: "Hourly Congestion - " + area}
	for _, p := range report.Hourly {
		hourly.Labels = append(hourly.Labels, p.Hour)
		hourly.Values = append(hourly.Values, float64(p.Congestion))
	}

	vehicles := domain.CategoricalData{Title: "Vehicle Distribution - " + area}
	for _, v := range report.Vehicles {
		vehicles.Labels = append(vehicles.Labels, v.Type)
		vehicles.Values = append(vehicles.Values, float64(v.Count))
	}

	weekly := domain.CategoricalData{Title: "Weekly Congestion Trend - " + area}
	for _, w := range report.Weekly {
		weekly.Labels = append(weekly.Labels, w.Day)
		weekly.Values = append(weekly.Values, float64(w.AvgCongestion))
	}

	specs := []struct {
		slot string
		kind domain.ChartKind
		data domain.CategoricalData
	}{
		{SlotCongestion, domain.ChartBar, hourly},
		{SlotVehicle, domain.ChartPie, vehicles},
		{SlotWeekly, domain.ChartLine, weekly},
	}

	charts := make([]ChartView, 0, len(specs))
	for _, spec := range specs {
		handle, err := s.renderer.Render(spec.kind, spec.data)
		if err != nil {
			if derr := disposeAll(charts); derr != nil {
				s.logger.Warn("failed to dispose partial charts", zap.Error(derr))
			}
			return Selection{}, fmt.Errorf("dashboard: failed to render %s: %w", spec.slot, err)
		}
		view := ChartView{
			Slot:   spec.slot,
			Kind:   spec.kind,
			Handle: handle,
			ID:     handle.ID(),
			Data:   spec.data,
		}
		// Captured now: the handle may be disposed by a later selection
		// before the caller serialises this one.
		if cc, ok := handle.(domain.ConfiguredChart); ok {
			view.Config = cc.ClientConfig()
		}
		charts = append(charts, view)
	}

	s.current = &Selection{
		Area:     area,
		Snapshot: report.Snapshot,
		Charts:   charts,
	}
	s.logger.Info("area selected", zap.String("area", area), zap.Int("seed", report.Seed))

	return *s.current, nil
}

// Current returns the active selection
func (s *DashboardService) Current() (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Selection{}, domain.ErrNoSelection
	}
	return *s.current, nil
}

// Close disposes the charts of the active selection
func (s *DashboardService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	err := disposeAll(s.current.Charts)
	s.current = nil
	return err
}

func disposeAll(charts []ChartView) error {
	var errs []error
	for _, c := range charts {
		if err := c.Handle.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
