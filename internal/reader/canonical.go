package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"rosterkit.transitops.org/internal/models"
)

// canonicalRow is the fixed on-disk layout used by schedule exports.
// Optional numeric fields stay strings so an empty cell is
// distinguishable from zero.
type canonicalRow struct {
	RunNumber      string `csv:"run_number"`
	Block          string `csv:"block"`
	StartPlace     string `csv:"start_place"`
	EndPlace       string `csv:"end_place"`
	StartTime      string `csv:"start_time"`
	EndTime        string `csv:"end_time"`
	TripID         string `csv:"trip_id"`
	Depot          string `csv:"depot"`
	VehicleClass   string `csv:"vehicle_class"`
	VehicleType    string `csv:"vehicle_type"`
	StartLat       string `csv:"start_lat"`
	StartLon       string `csv:"start_lon"`
	EndLat         string `csv:"end_lat"`
	EndLon         string `csv:"end_lon"`
	RouteShapeID   string `csv:"route_shape_id"`
	RowType        string `csv:"row_type"`
	DutyID         string `csv:"duty_id"`
	ShiftID        string `csv:"shift_id"`
	RouteShortName string `csv:"route_short_name"`
	Headsign       string `csv:"headsign"`
}

// ReadCanonical reads a schedule in the canonical export layout. Extra
// columns are ignored and short records tolerated, so hand-edited
// exports still load.
func ReadCanonical(src io.Reader) (*models.Schedule, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r
	})

	var records []canonicalRow
	if err := gocsv.Unmarshal(src, &records); err != nil {
		return nil, fmt.Errorf("decoding canonical schedule: %w", err)
	}

	rows := make([]models.ScheduleRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.toRow())
	}

	schedule := models.FromRows(rows)
	schedule.Metadata.ColumnMapping = DefaultMapping().AsMap()
	return schedule, nil
}

func (c canonicalRow) toRow() models.ScheduleRow {
	return models.ScheduleRow{
		RunNumber:      c.RunNumber,
		Block:          c.Block,
		StartPlace:     c.StartPlace,
		EndPlace:       c.EndPlace,
		StartTime:      c.StartTime,
		EndTime:        c.EndTime,
		TripID:         c.TripID,
		Depot:          c.Depot,
		VehicleClass:   c.VehicleClass,
		VehicleType:    c.VehicleType,
		StartLat:       parseOptionalFloat(c.StartLat),
		StartLon:       parseOptionalFloat(c.StartLon),
		EndLat:         parseOptionalFloat(c.EndLat),
		EndLon:         parseOptionalFloat(c.EndLon),
		RouteShapeID:   c.RouteShapeID,
		Kind:           models.ParseRowKind(c.RowType),
		DutyID:         c.DutyID,
		ShiftID:        c.ShiftID,
		RouteShortName: c.RouteShortName,
		Headsign:       c.Headsign,
	}
}

func parseOptionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
