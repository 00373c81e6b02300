package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/twpayne/go-polyline"

	"rosterkit.transitops.org/internal/logging"
	"rosterkit.transitops.org/internal/models"
)

// Exporter writes schedules as delimited text.
type Exporter struct {
	config Config
	logger *slog.Logger
}

// New creates an exporter with the given configuration.
func New(config Config) *Exporter {
	return &Exporter{config: config}
}

// ForPreset creates an exporter for a predefined layout.
func ForPreset(preset Preset) *Exporter {
	return New(preset.Config())
}

// WithLogger attaches a logger for per-file reporting.
func (e *Exporter) WithLogger(logger *slog.Logger) *Exporter {
	e.logger = logger
	return e
}

// WriteFile exports a schedule to disk.
func (e *Exporter) WriteFile(schedule *models.Schedule, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer logging.SafeCloseWithLogging(file, e.logger, "export file")

	if err := e.Write(schedule, file); err != nil {
		return fmt.Errorf("exporting to %s: %w", path, err)
	}

	if e.logger != nil {
		logging.LogOperation(e.logger, "schedule_exported",
			slog.String("path", path),
			slog.Int("rows", schedule.Len()))
	}
	return nil
}

// Write exports a schedule to a stream.
func (e *Exporter) Write(schedule *models.Schedule, dst io.Writer) error {
	csvWriter := csv.NewWriter(dst)
	if e.config.Delimiter != 0 {
		csvWriter.Comma = e.config.Delimiter
	}

	if e.config.IncludeHeader {
		headers := make([]string, 0, len(e.config.Columns))
		for _, column := range e.config.Columns {
			headers = append(headers, column.Header)
		}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("writing header row: %w", err)
		}
	}

	for idx, row := range schedule.Rows() {
		record := make([]string, 0, len(e.config.Columns))
		for _, column := range e.config.Columns {
			record = append(record, e.fieldValue(row, column.Field))
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", idx, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// String exports a schedule to CSV text.
func (e *Exporter) String(schedule *models.Schedule) (string, error) {
	var buf bytes.Buffer
	if err := e.Write(schedule, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Bytes exports a schedule to an in-memory file.
func (e *Exporter) Bytes(schedule *models.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(schedule, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) fieldValue(row models.ScheduleRow, field string) string {
	var value string
	switch field {
	case "run_number":
		value = row.RunNumber
	case "block":
		value = row.Block
	case "start_place":
		value = row.StartPlace
	case "end_place":
		value = row.EndPlace
	case "start_time":
		value = e.timeValue(row.StartTime)
	case "end_time":
		value = e.timeValue(row.EndTime)
	case "trip_id":
		value = row.TripID
	case "depot":
		value = row.Depot
	case "vehicle_class":
		value = row.VehicleClass
	case "vehicle_type":
		value = row.VehicleType
	case "start_lat":
		value = floatValue(row.StartLat)
	case "start_lon":
		value = floatValue(row.StartLon)
	case "end_lat":
		value = floatValue(row.EndLat)
	case "end_lon":
		value = floatValue(row.EndLon)
	case "route_shape_id":
		value = row.RouteShapeID
	case "row_type":
		value = row.Kind.String()
	case "duty_id":
		value = row.DutyID
	case "shift_id":
		value = row.ShiftID
	case "route_short_name":
		value = row.RouteShortName
	case "headsign":
		value = row.Headsign
	}

	if value == "" {
		return e.config.NullValue
	}
	return value
}

func (e *Exporter) timeValue(raw string) string {
	if raw == "" {
		return ""
	}
	return e.config.formatTime(raw)
}

func floatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// deadheadHeaders is the fixed layout of a deadhead export.
var deadheadHeaders = []string{
	"kind", "block", "from_location", "to_location",
	"start_time", "end_time", "distance_meters", "inferred", "geometry",
}

// WriteDeadheads exports inferred deadhead movements, one row per
// movement. The geometry column carries the straight-line path between
// the endpoints as an encoded polyline when both coordinates are known.
func (e *Exporter) WriteDeadheads(deadheads []models.Deadhead, dst io.Writer) error {
	csvWriter := csv.NewWriter(dst)
	if e.config.Delimiter != 0 {
		csvWriter.Comma = e.config.Delimiter
	}

	if e.config.IncludeHeader {
		if err := csvWriter.Write(deadheadHeaders); err != nil {
			return fmt.Errorf("writing header row: %w", err)
		}
	}

	for idx, dh := range deadheads {
		record := []string{
			dh.Kind.String(),
			dh.BlockID,
			dh.FromLocation,
			dh.ToLocation,
			e.optionalTime(dh.StartSeconds),
			e.optionalTime(dh.EndSeconds),
			optionalFloat(dh.DistanceMeters),
			strconv.FormatBool(dh.IsInferred),
			deadheadGeometry(dh),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("writing deadhead %d: %w", idx, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteDeadheadsFile exports deadhead movements to disk.
func (e *Exporter) WriteDeadheadsFile(deadheads []models.Deadhead, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating deadhead export file: %w", err)
	}
	defer logging.SafeCloseWithLogging(file, e.logger, "deadhead export file")

	if err := e.WriteDeadheads(deadheads, file); err != nil {
		return fmt.Errorf("exporting deadheads to %s: %w", path, err)
	}

	if e.logger != nil {
		logging.LogOperation(e.logger, "deadheads_exported",
			slog.String("path", path),
			slog.Int("count", len(deadheads)))
	}
	return nil
}

func (e *Exporter) optionalTime(seconds *int) string {
	if seconds == nil {
		return e.config.NullValue
	}
	return e.config.formatTime(models.FormatTimeSeconds(*seconds))
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func deadheadGeometry(dh models.Deadhead) string {
	if dh.FromLat == nil || dh.FromLon == nil || dh.ToLat == nil || dh.ToLon == nil {
		return ""
	}
	coords := [][]float64{
		{*dh.FromLat, *dh.FromLon},
		{*dh.ToLat, *dh.ToLon},
	}
	return string(polyline.EncodeCoords(coords))
}
