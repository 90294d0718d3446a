package domain

var (
	hourLabels    = [...]string{"6 AM", "8 AM", "10 AM", "12 PM", "2 PM", "4 PM", "6 PM", "8 PM", "10 PM"}
	vehicleLabels = [...]string{"Cars", "Bikes", "Buses", "Auto Rickshaws", "Trucks"}
	dayLabels     = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// HourLabels returns the hourly sample labels, 6 AM to 10 PM
func HourLabels() []string { return append([]string(nil), hourLabels[:]...) }

// VehicleLabels returns the vehicle categories in output order
func VehicleLabels() []string { return append([]string(nil), vehicleLabels[:]...) }

// DayLabels returns Mon..Sun
func DayLabels() []string { return append([]string(nil), dayLabels[:]...) }

// MetricSnapshot holds the headline metrics for one area
type MetricSnapshot struct {
	Area               AreaName `json:"area"`
	PeakHourCongestion int      `json:"peakHourCongestion"`
	AvgSpeed           int      `json:"avgSpeed"`
	VehicleCount       int      `json:"vehicleCount"`
	AccidentRate       float64  `json:"accidentRate"`
	AirQualityIndex    int      `json:"airQualityIndex"`
	CongestionLevel    string   `json:"congestionLevel"`
}

// HourlyPoint is one sample of the daily congestion curve
type HourlyPoint struct {
	Hour       string `json:"hour"`
	Congestion int    `json:"congestion"`
	Speed      int    `json:"speed"`
	Vehicles   int    `json:"vehicles"`
}

// VehicleTypeCount is the count for a single vehicle category
type VehicleTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// WeeklyPoint is one day of the weekly trend
type WeeklyPoint struct {
	Day           string `json:"day"`
	AvgCongestion int    `json:"avgCongestion"`
	Incidents     int    `json:"incidents"`
}

// AreaReport bundles every metric family for an area
type AreaReport struct {
	Area     AreaName           `json:"area"`
	Seed     int                `json:"seed"`
	Snapshot MetricSnapshot     `json:"snapshot"`
	Hourly   []HourlyPoint      `json:"hourly"`
	Vehicles []VehicleTypeCount `json:"vehicles"`
	Weekly   []WeeklyPoint      `json:"weekly"`
}
