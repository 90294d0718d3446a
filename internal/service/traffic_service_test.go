package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/generator"
	"github.com/smartcity/trafficboard/internal/repository/memory"
)

type failingRepo struct{ err error }

func (r failingRepo) ListAreas(ctx context.Context) ([]domain.AreaName, error) { return nil, r.err }
func (r failingRepo) GetHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	return nil, r.err
}
func (r failingRepo) Health(ctx context.Context) error { return r.err }

func TestTrafficServiceReport(t *testing.T) {
	svc := NewTrafficService(memory.NewRepository(), nil)
	ctx := context.Background()

	report, err := svc.Report(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, generator.Report("Hebbal"), report)

	snap, err := svc.Snapshot(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, report.Snapshot, snap)

	hourly, err := svc.Hourly(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, report.Hourly, hourly)

	vehicles, err := svc.Vehicles(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, report.Vehicles, vehicles)

	weekly, err := svc.Weekly(ctx, "Hebbal")
	require.NoError(t, err)
	assert.Equal(t, report.Weekly, weekly)
}

func TestTrafficServiceUnknownArea(t *testing.T) {
	svc := NewTrafficService(memory.NewRepository(), nil)
	ctx := context.Background()

	_, err := svc.Report(ctx, "Atlantis")
	assert.ErrorIs(t, err, domain.ErrUnknownArea)

	_, err = svc.Hourly(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnknownArea)
}

func TestTrafficServiceRepoFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewTrafficService(failingRepo{err: boom}, nil)
	ctx := context.Background()

	_, err := svc.Areas(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Weekly(ctx, "Hebbal")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnknownArea)

	_, err = svc.Hotspots(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Health(ctx), boom)
}
