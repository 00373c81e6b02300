// Package reader imports schedule files: delimited text with flexible
// column mapping, optional gzip compression, and a fixed canonical
// layout for files this toolchain wrote itself.
package reader

import "strings"

// Field names rows are addressed by, independent of what the source
// file calls its columns.
const (
	FieldRunNumber      = "run_number"
	FieldBlock          = "block"
	FieldStartPlace     = "start_place"
	FieldEndPlace       = "end_place"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldTripID         = "trip_id"
	FieldDepot          = "depot"
	FieldVehicleClass   = "vehicle_class"
	FieldVehicleType    = "vehicle_type"
	FieldStartLat       = "start_lat"
	FieldStartLon       = "start_lon"
	FieldEndLat         = "end_lat"
	FieldEndLon         = "end_lon"
	FieldRouteShapeID   = "route_shape_id"
	FieldRowType        = "row_type"
	FieldDutyID         = "duty_id"
	FieldShiftID        = "shift_id"
	FieldRouteShortName = "route_short_name"
	FieldHeadsign       = "headsign"
)

// fieldNames lists every field in canonical column order.
var fieldNames = []string{
	FieldRunNumber, FieldBlock, FieldStartPlace, FieldEndPlace,
	FieldStartTime, FieldEndTime, FieldTripID, FieldDepot,
	FieldVehicleClass, FieldVehicleType,
	FieldStartLat, FieldStartLon, FieldEndLat, FieldEndLon,
	FieldRouteShapeID, FieldRowType, FieldDutyID, FieldShiftID,
	FieldRouteShortName, FieldHeadsign,
}

// ColumnMapping maps field names to the column names a source file
// actually uses.
type ColumnMapping struct {
	columns map[string]string
}

// NewColumnMapping creates an empty mapping.
func NewColumnMapping() *ColumnMapping {
	return &ColumnMapping{columns: make(map[string]string)}
}

// FromMap creates a mapping from a field-to-column map.
func FromMap(columns map[string]string) *ColumnMapping {
	m := NewColumnMapping()
	for field, column := range columns {
		m.columns[field] = column
	}
	return m
}

// Add maps one field to a source column.
func (m *ColumnMapping) Add(field, column string) *ColumnMapping {
	m.columns[field] = column
	return m
}

// Column returns the source column for a field.
func (m *ColumnMapping) Column(field string) (string, bool) {
	column, ok := m.columns[field]
	return column, ok
}

// Len returns the number of mapped fields.
func (m *ColumnMapping) Len() int {
	return len(m.columns)
}

// AsMap returns a copy of the mapping keyed by field name.
func (m *ColumnMapping) AsMap() map[string]string {
	out := make(map[string]string, len(m.columns))
	for field, column := range m.columns {
		out[field] = column
	}
	return out
}

// DefaultMapping maps every field to its own canonical name.
func DefaultMapping() *ColumnMapping {
	m := NewColumnMapping()
	for _, field := range fieldNames {
		m.Add(field, field)
	}
	return m
}

// detectPatterns lists, per field, the header names that identify it.
// Matching is case-insensitive and accepts substrings, so "Run Number"
// and "gtfs_trip_id" resolve without an explicit mapping.
var detectPatterns = []struct {
	field    string
	patterns []string
}{
	{FieldRunNumber, []string{"run_number", "run", "run_no", "driver_id", "operator_id"}},
	{FieldBlock, []string{"block", "block_id", "vehicle_block", "blk"}},
	{FieldStartPlace, []string{"start_place", "start_stop", "from_stop", "origin", "start_location"}},
	{FieldEndPlace, []string{"end_place", "end_stop", "to_stop", "destination", "end_location"}},
	{FieldStartTime, []string{"start_time", "departure_time", "depart_time", "start"}},
	{FieldEndTime, []string{"end_time", "arrival_time", "arrive_time", "end"}},
	{FieldTripID, []string{"trip_id", "trip", "gtfs_trip_id"}},
	{FieldDepot, []string{"depot", "garage", "depot_id", "base"}},
	{FieldVehicleClass, []string{"vehicle_class", "veh_class", "bus_type"}},
	{FieldVehicleType, []string{"vehicle_type", "veh_type", "vehicle"}},
	{FieldStartLat, []string{"start_lat", "from_lat", "origin_lat"}},
	{FieldStartLon, []string{"start_lon", "from_lon", "origin_lon"}},
	{FieldEndLat, []string{"end_lat", "to_lat", "dest_lat"}},
	{FieldEndLon, []string{"end_lon", "to_lon", "dest_lon"}},
	{FieldRouteShapeID, []string{"route_shape_id", "shape_id"}},
	{FieldRowType, []string{"row_type", "type", "activity_type", "movement_type"}},
	{FieldDutyID, []string{"duty_id", "duty", "crew_id"}},
	{FieldShiftID, []string{"shift_id", "shift"}},
	{FieldRouteShortName, []string{"route_short_name", "route", "line"}},
	{FieldHeadsign, []string{"headsign", "destination", "direction"}},
}

// AutoDetect builds a mapping by fuzzy-matching the given headers
// against known column name variants. Fields with no matching header
// stay unmapped.
func AutoDetect(headers []string) *ColumnMapping {
	mapping := NewColumnMapping()
	for _, entry := range detectPatterns {
		for _, header := range headers {
			lower := strings.ToLower(header)
			matched := false
			for _, pattern := range entry.patterns {
				if lower == pattern || strings.Contains(lower, pattern) {
					mapping.Add(entry.field, header)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	return mapping
}
