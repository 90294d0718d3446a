package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/generator"
	"github.com/smartcity/trafficboard/internal/render"
	"github.com/smartcity/trafficboard/internal/repository/memory"
)

// flakyRenderer fails on the nth Render call
type flakyRenderer struct {
	inner  *render.ChartJSRenderer
	failAt int
	calls  int
}

func (r *flakyRenderer) Render(kind domain.ChartKind, data domain.CategoricalData) (domain.ChartHandle, error) {
	r.calls++
	if r.calls == r.failAt {
		return nil, errors.New("canvas missing")
	}
	return r.inner.Render(kind, data)
}

func newDashboard(renderer domain.ChartRenderer) *DashboardService {
	return NewDashboardService(NewTrafficService(memory.NewRepository(), nil), renderer, nil)
}

func TestDashboardSelect(t *testing.T) {
	renderer := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(renderer)

	sel, err := dash.Select(context.Background(), "MG Road")
	require.NoError(t, err)

	assert.Equal(t, "MG Road", sel.Area)
	assert.Equal(t, generator.Snapshot("MG Road"), sel.Snapshot)
	require.Len(t, sel.Charts, 3)

	congestion := sel.Charts[0]
	assert.Equal(t, SlotCongestion, congestion.Slot)
	assert.Equal(t, domain.ChartBar, congestion.Kind)
	assert.Equal(t, "Hourly Congestion - MG Road", congestion.Data.Title)
	assert.Equal(t, domain.HourLabels(), congestion.Data.Labels)
	for i, p := range generator.Hourly("MG Road") {
		assert.Equal(t, float64(p.Congestion), congestion.Data.Values[i])
	}

	vehicle := sel.Charts[1]
	assert.Equal(t, domain.ChartPie, vehicle.Kind)
	assert.Equal(t, domain.VehicleLabels(), vehicle.Data.Labels)
	assert.Equal(t, "Vehicle Distribution - MG Road", vehicle.Data.Title)

	weekly := sel.Charts[2]
	assert.Equal(t, domain.ChartLine, weekly.Kind)
	assert.Equal(t, domain.DayLabels(), weekly.Data.Labels)
	assert.Equal(t, "Weekly Congestion Trend - MG Road", weekly.Data.Title)

	assert.Equal(t, 3, renderer.Active())

	current, err := dash.Current()
	require.NoError(t, err)
	assert.Equal(t, sel.Area, current.Area)
}

func TestDashboardReselectDisposesPrevious(t *testing.T) {
	renderer := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(renderer)
	ctx := context.Background()

	first, err := dash.Select(ctx, "MG Road")
	require.NoError(t, err)

	second, err := dash.Select(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, 3, renderer.Active())

	for _, c := range first.Charts {
		_, ok := renderer.Lookup(c.ID)
		assert.False(t, ok, "chart %s from previous selection still live", c.ID)
	}
	for _, c := range second.Charts {
		_, ok := renderer.Lookup(c.ID)
		assert.True(t, ok)
	}
}

func TestDashboardSelectUnknownKeepsState(t *testing.T) {
	renderer := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(renderer)
	ctx := context.Background()

	_, err := dash.Select(ctx, "MG Road")
	require.NoError(t, err)

	_, err = dash.Select(ctx, "Atlantis")
	assert.ErrorIs(t, err, domain.ErrUnknownArea)

	current, err := dash.Current()
	require.NoError(t, err)
	assert.Equal(t, "MG Road", current.Area)
	assert.Equal(t, 3, renderer.Active())
}

func TestDashboardRenderFailureCleansUp(t *testing.T) {
	inner := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(&flakyRenderer{inner: inner, failAt: 3})

	_, err := dash.Select(context.Background(), "Domlur")
	require.Error(t, err)
	assert.Contains(t, err.Error(), SlotWeekly)
	assert.Equal(t, 0, inner.Active())

	_, err = dash.Current()
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

func TestDashboardCurrentAndClose(t *testing.T) {
	renderer := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(renderer)

	_, err := dash.Current()
	assert.ErrorIs(t, err, domain.ErrNoSelection)
	assert.NoError(t, dash.Close())

	_, err = dash.Select(context.Background(), "Peenya")
	require.NoError(t, err)
	require.NoError(t, dash.Close())
	assert.Equal(t, 0, renderer.Active())

	_, err = dash.Current()
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

func TestDashboardSelectionKeepsConfigAfterDispose(t *testing.T) {
	renderer := render.NewChartJSRenderer(nil, nil)
	dash := newDashboard(renderer)
	ctx := context.Background()

	first, err := dash.Select(ctx, "Hebbal")
	require.NoError(t, err)
	_, err = dash.Select(ctx, "Peenya")
	require.NoError(t, err)

	for _, c := range first.Charts {
		cfg, ok := c.Config.(render.ChartConfig)
		require.True(t, ok, c.Slot)
		assert.Equal(t, c.Kind, cfg.Type)
		assert.Equal(t, c.Data.Labels, cfg.Data.Labels)
	}
}
