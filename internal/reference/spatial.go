package reference

import (
	"sort"

	"github.com/tidwall/rtree"
	"rosterkit.transitops.org/internal/utils"
)

// SpatialIndex is an r-tree over the stops of a timetable, for nearest
// -stop and radius queries. Read-only after construction.
type SpatialIndex struct {
	tree   rtree.RTreeG[string]
	coords map[string]Coordinate
}

// NearbyStop is one result of a spatial query.
type NearbyStop struct {
	StopID         string
	Coord          Coordinate
	DistanceMeters float64
}

// NewSpatialIndex builds the index from every stop in the timetable that
// carries a coordinate.
func NewSpatialIndex(tt *Timetable) *SpatialIndex {
	idx := &SpatialIndex{coords: make(map[string]Coordinate, len(tt.stopCoords))}
	for stopID, coord := range tt.stopCoords {
		point := [2]float64{coord.Lon, coord.Lat}
		idx.tree.Insert(point, point, stopID)
		idx.coords[stopID] = coord
	}
	return idx
}

// Len returns the number of indexed stops.
func (s *SpatialIndex) Len() int {
	return s.tree.Len()
}

// NearestStop returns the stop closest to the given point, with its
// great-circle distance. ok is false when the index is empty.
func (s *SpatialIndex) NearestStop(lat, lon float64) (NearbyStop, bool) {
	point := [2]float64{lon, lat}
	var nearest NearbyStop
	found := false
	s.tree.Nearby(
		rtree.BoxDist[float64, string](point, point, nil),
		func(min, max [2]float64, stopID string, dist float64) bool {
			coord := s.coords[stopID]
			nearest = NearbyStop{
				StopID:         stopID,
				Coord:          coord,
				DistanceMeters: utils.HaversineMeters(lat, lon, coord.Lat, coord.Lon),
			}
			found = true
			return false
		})
	return nearest, found
}

// StopsWithin returns every stop within radiusMeters of the point,
// ordered nearest first.
func (s *SpatialIndex) StopsWithin(lat, lon, radiusMeters float64) []NearbyStop {
	bounds := utils.CalculateBounds(lat, lon, radiusMeters)
	var stops []NearbyStop
	s.tree.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(min, max [2]float64, stopID string) bool {
			coord := s.coords[stopID]
			dist := utils.HaversineMeters(lat, lon, coord.Lat, coord.Lon)
			if dist <= radiusMeters {
				stops = append(stops, NearbyStop{StopID: stopID, Coord: coord, DistanceMeters: dist})
			}
			return true
		})
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].DistanceMeters < stops[j].DistanceMeters
	})
	return stops
}
