package domain

import (
	"errors"
	"sort"
)

// AreaName identifies one of the Bangalore city areas shown on the dashboard
type AreaName = string

var (
	// ErrUnknownArea is returned when an area is not part of the catalog
	ErrUnknownArea = errors.New("unknown area")

	// ErrNoSelection is returned when the dashboard has no area selected yet
	ErrNoSelection = errors.New("no area selected")
)

// BangaloreAreas is the built-in area catalog, sorted and unique
var BangaloreAreas = sortedAreas(
	"Whitefield",
	"Electronic City",
	"Koramangala",
	"Indiranagar",
	"Jayanagar",
	"Marathahalli",
	"HSR Layout",
	"BTM Layout",
	"Bellandur",
	"Sarjapur Road",
	"Bannerghatta Road",
	"Hebbal",
	"Yeshwanthpur",
	"Rajajinagar",
	"Malleshwaram",
	"MG Road",
	"Brigade Road",
	"Silk Board",
	"KR Puram",
	"Yelahanka",
	"JP Nagar",
	"Banashankari",
	"Vijayanagar",
	"Kengeri",
	"Peenya",
	"RT Nagar",
	"Kalyan Nagar",
	"CV Raman Nagar",
	"Domlur",
	"Old Airport Road",
)

// Hotspot is a congestion hotspot entry served to the heatmap page
type Hotspot struct {
	Area      AreaName `json:"area"`
	Incidents int      `json:"incidents"`
	Percent   int      `json:"percent"`
}

// NormalizeAreas returns a sorted copy of names with duplicates and empty names removed
func NormalizeAreas(names []AreaName) []AreaName {
	return sortedAreas(names...)
}

// ContainsArea reports whether name is present in the sorted list
func ContainsArea(areas []AreaName, name AreaName) bool {
	i := sort.SearchStrings(areas, name)
	return i < len(areas) && areas[i] == name
}

func sortedAreas(names ...AreaName) []AreaName {
	out := make([]AreaName, 0, len(names))
	seen := make(map[AreaName]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
