package geo

import (
	"math"

	"github.com/hafeezhmha/goodminton/types"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in km
func Haversine(a, b types.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lng1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lng2 := b.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// StationIndex answers nearest-station queries over a fixed list of
// metro stations. Construct once at startup and pass around; the index
// is read-only after New.
type StationIndex struct {
	stations []types.Station
}

// NewStationIndex builds an index over the given stations. A nil or
// empty list is valid: Nearest then reports no station with +Inf.
func NewStationIndex(stations []types.Station) *StationIndex {
	return &StationIndex{stations: stations}
}

// Len returns the number of stations in the index
func (idx *StationIndex) Len() int {
	return len(idx.stations)
}

// Nearest returns the name of the station closest to point and the
// distance to it in km. Ties keep the first station in list order, so
// results are deterministic for a fixed load order.
func (idx *StationIndex) Nearest(point types.Coordinate) (string, float64) {
	name := ""
	min := math.Inf(1)

	for _, s := range idx.stations {
		d := Haversine(point, types.Coordinate{Lat: s.Lat, Lng: s.Lng})
		if d < min {
			min = d
			name = s.Name
		}
	}

	return name, min
}
