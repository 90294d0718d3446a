// Package generator derives synthetic traffic metrics from an area name.
//
// Every value is a pure function of the name and a position index: the name
// is folded into a seed and a sine-based sequence is sampled at fixed offsets.
// Nothing is cached and no state is shared between calls.
package generator

import (
	"math"

	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/pkg/utils"
)

const (
	peakMultiplier    = 1.5
	weekendMultiplier = 0.7

	// weeklyStride is the sine offset between consecutive days.
	// Hourly and vehicle samples use a stride of 1.
	weeklyStride = 10
)

// Seed returns the sum of the code points of name
func Seed(name domain.AreaName) int {
	seed := 0
	for _, r := range name {
		seed += int(r)
	}
	return seed
}

// Unit returns a reproducible value in [0, 1) for the given seed and index
func Unit(seed int, index float64) float64 {
	x := math.Sin(float64(seed)+index) * 10000
	return utils.Frac(x)
}

// Snapshot returns the headline metrics for an area
func Snapshot(name domain.AreaName) domain.MetricSnapshot {
	seed := Seed(name)
	scaled := func(min, max float64, index float64) float64 {
		return utils.Lerp(min, max, Unit(seed, index))
	}

	snap := domain.MetricSnapshot{
		Area:               name,
		PeakHourCongestion: utils.RoundInt(scaled(30, 95, 1)),
		AvgSpeed:           utils.RoundInt(scaled(15, 45, 2)),
		VehicleCount:       utils.RoundInt(scaled(5000, 25000, 3)),
		AccidentRate:       utils.RoundTo(scaled(2, 15, 4), 1),
		AirQualityIndex:    utils.RoundInt(scaled(50, 250, 5)),
	}
	snap.CongestionLevel = CongestionLevel(float64(snap.PeakHourCongestion))
	return snap
}

// Hourly returns the nine-point daily curve, peaking at 8 AM and 6 PM
func Hourly(name domain.AreaName) []domain.HourlyPoint {
	seed := Seed(name)
	hours := domain.HourLabels()
	points := make([]domain.HourlyPoint, len(hours))

	for i, hour := range hours {
		u := Unit(seed, float64(i))
		m := 1.0
		if i == 1 || i == 6 {
			m = peakMultiplier
		}

		points[i] = domain.HourlyPoint{
			Hour:       hour,
			Congestion: utils.RoundInt(u*60*m + 30),
			Speed:      utils.RoundInt((1-u)*30 + 15),
			Vehicles:   utils.RoundInt(u*15000*m + 5000),
		}
	}

	return points
}

// vehicleRanges holds scale and offset per category, in VehicleLabels order
var vehicleRanges = [...]struct{ scale, offset float64 }{
	{5000, 8000},  // Cars
	{6000, 10000}, // Bikes
	{1000, 1500},  // Buses
	{3000, 4000},  // Auto Rickshaws
	{2000, 2000},  // Trucks
}

// VehicleDistribution returns counts per vehicle category.
// Counts are independent and do not sum to a fixed total.
func VehicleDistribution(name domain.AreaName) []domain.VehicleTypeCount {
	seed := Seed(name)
	labels := domain.VehicleLabels()
	counts := make([]domain.VehicleTypeCount, len(labels))

	for i, label := range labels {
		r := vehicleRanges[i]
		counts[i] = domain.VehicleTypeCount{
			Type:  label,
			Count: utils.RoundInt(Unit(seed, float64(i+1))*r.scale + r.offset),
		}
	}

	return counts
}

// Weekly returns the Mon..Sun trend with damped weekend values
func Weekly(name domain.AreaName) []domain.WeeklyPoint {
	seed := Seed(name)
	days := domain.DayLabels()
	points := make([]domain.WeeklyPoint, len(days))

	for i, day := range days {
		u := Unit(seed, float64(i*weeklyStride))
		m := 1.0
		if i >= 5 {
			m = weekendMultiplier
		}

		points[i] = domain.WeeklyPoint{
			Day:           day,
			AvgCongestion: utils.RoundInt(u*50*m + 40),
			Incidents:     utils.RoundInt(u*8*m + 2),
		}
	}

	return points
}

// Report computes all metric families for an area
func Report(name domain.AreaName) domain.AreaReport {
	return domain.AreaReport{
		Area:     name,
		Seed:     Seed(name),
		Snapshot: Snapshot(name),
		Hourly:   Hourly(name),
		Vehicles: VehicleDistribution(name),
		Weekly:   Weekly(name),
	}
}

// CongestionLevel returns a human-readable level for a 0-100 index
func CongestionLevel(index float64) string {
	switch {
	case index >= 80:
		return "Severe"
	case index >= 60:
		return "Heavy"
	case index >= 40:
		return "Moderate"
	case index >= 20:
		return "Light"
	default:
		return "Free Flow"
	}
}
