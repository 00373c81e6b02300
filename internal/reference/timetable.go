// Package reference loads GTFS static data and exposes the lookup
// structures validation and inference need: id sets for trips, stops,
// and shapes, plus stop coordinates and a spatial index.
package reference

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/OneBusAway/go-gtfs"
	"rosterkit.transitops.org/internal/logging"
)

// Timetable is the read-only view of a GTFS static feed used as ground
// truth. Build one with FromStatic or LoadFromFile and share it freely;
// it is never mutated after construction.
type Timetable struct {
	tripIDs  map[string]struct{}
	stopIDs  map[string]struct{}
	shapeIDs map[string]struct{}

	stopCoords map[string]Coordinate
	stopNames  map[string]string
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// FromStatic builds a timetable from an already-parsed feed.
func FromStatic(static *gtfs.Static) *Timetable {
	tt := &Timetable{
		tripIDs:    make(map[string]struct{}),
		stopIDs:    make(map[string]struct{}),
		shapeIDs:   make(map[string]struct{}),
		stopCoords: make(map[string]Coordinate),
		stopNames:  make(map[string]string),
	}
	if static == nil {
		return tt
	}

	for _, trip := range static.Trips {
		if trip.ID != "" {
			tt.tripIDs[trip.ID] = struct{}{}
		}
	}
	for _, stop := range static.Stops {
		if stop.Id == "" {
			continue
		}
		tt.stopIDs[stop.Id] = struct{}{}
		tt.stopNames[stop.Id] = stop.Name
		if stop.Latitude != nil && stop.Longitude != nil {
			tt.stopCoords[stop.Id] = Coordinate{Lat: *stop.Latitude, Lon: *stop.Longitude}
		}
	}
	for _, shape := range static.Shapes {
		if shape.ID != "" {
			tt.shapeIDs[shape.ID] = struct{}{}
		}
	}
	return tt
}

// LoadFromFile reads and parses a GTFS static zip from disk.
func LoadFromFile(path string, logger *slog.Logger) (*Timetable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS file: %w", err)
	}

	static, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	tt := FromStatic(static)
	logging.LogOperation(logger, "gtfs_reference_loaded",
		slog.String("source", path),
		slog.Int("trips", len(tt.tripIDs)),
		slog.Int("stops", len(tt.stopIDs)),
		slog.Int("shapes", len(tt.shapeIDs)))
	return tt, nil
}

// HasTrip reports whether the feed defines the trip id.
func (t *Timetable) HasTrip(tripID string) bool {
	_, ok := t.tripIDs[tripID]
	return ok
}

// HasStop reports whether the feed defines the stop id.
func (t *Timetable) HasStop(stopID string) bool {
	_, ok := t.stopIDs[stopID]
	return ok
}

// HasShape reports whether the feed defines the shape id.
func (t *Timetable) HasShape(shapeID string) bool {
	_, ok := t.shapeIDs[shapeID]
	return ok
}

// StopCoord returns the stop's coordinate when the feed supplies one.
func (t *Timetable) StopCoord(stopID string) (Coordinate, bool) {
	c, ok := t.stopCoords[stopID]
	return c, ok
}

// StopName returns the stop's name, "" when unknown.
func (t *Timetable) StopName(stopID string) string {
	return t.stopNames[stopID]
}

// TripCount returns the number of distinct trips in the feed.
func (t *Timetable) TripCount() int { return len(t.tripIDs) }

// StopCount returns the number of distinct stops in the feed.
func (t *Timetable) StopCount() int { return len(t.stopIDs) }

// ShapeCount returns the number of distinct shapes in the feed.
func (t *Timetable) ShapeCount() int { return len(t.shapeIDs) }
