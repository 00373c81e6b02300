package reader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"rosterkit.transitops.org/internal/logging"
	"rosterkit.transitops.org/internal/models"
)

// Options controls how a schedule file is read.
type Options struct {
	// Mapping overrides column detection entirely when set.
	Mapping *ColumnMapping

	// AutoDetect matches headers against known column name variants when
	// no explicit mapping is given. Without it the canonical column names
	// are assumed.
	AutoDetect bool

	// Delimiter is the field separator; 0 means comma.
	Delimiter rune

	// HasHeaders marks the first record as a header row. Headerless files
	// are read in canonical column order.
	HasHeaders bool

	// SkipEmptyRows drops records whose every field is blank.
	SkipEmptyRows bool
}

// NewOptions returns the default options: auto-detected columns,
// comma-separated, with a header row, skipping empty records.
func NewOptions() Options {
	return Options{
		AutoDetect:    true,
		HasHeaders:    true,
		SkipEmptyRows: true,
	}
}

// WithMapping sets an explicit column mapping.
func (o Options) WithMapping(mapping *ColumnMapping) Options {
	o.Mapping = mapping
	return o
}

// WithDelimiter sets the field separator.
func (o Options) WithDelimiter(delimiter rune) Options {
	o.Delimiter = delimiter
	return o
}

// WithoutHeaders marks the file as headerless.
func (o Options) WithoutHeaders() Options {
	o.HasHeaders = false
	return o
}

// Reader imports schedule files into the row model.
type Reader struct {
	options Options
	logger  *slog.Logger
}

// New creates a reader with the given options.
func New(options Options) *Reader {
	return &Reader{options: options}
}

// WithLogger attaches a logger for per-file reporting.
func (r *Reader) WithLogger(logger *slog.Logger) *Reader {
	r.logger = logger
	return r
}

// gzipMagic is the two-byte header every gzip stream starts with.
var gzipMagic = []byte{0x1f, 0x8b}

// ReadFile reads a schedule from disk. Gzip-compressed files are
// detected by their magic bytes and decompressed transparently.
func (r *Reader) ReadFile(path string) (*models.Schedule, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer logging.SafeCloseWithLogging(file, r.logger, "schedule file")

	schedule, err := r.Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	schedule.Metadata.SourceFile = path

	if r.logger != nil {
		logging.LogOperation(r.logger, "schedule_loaded",
			slog.String("path", path),
			slog.Int("rows", schedule.Len()))
	}
	return schedule, nil
}

// Read reads a schedule from a stream, sniffing for gzip compression.
func (r *Reader) Read(src io.Reader) (*models.Schedule, error) {
	buffered := bufio.NewReader(src)

	head, err := buffered.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(head, gzipMagic) {
		unzipped, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer logging.SafeCloseWithLogging(unzipped, r.logger, "gzip stream")
		return r.readCSV(unzipped)
	}

	return r.readCSV(buffered)
}

// ReadBytes reads a schedule from an in-memory file.
func (r *Reader) ReadBytes(data []byte) (*models.Schedule, error) {
	return r.Read(bytes.NewReader(data))
}

// ReadString reads a schedule from CSV text.
func (r *Reader) ReadString(data string) (*models.Schedule, error) {
	return r.Read(strings.NewReader(data))
}

func (r *Reader) readCSV(src io.Reader) (*models.Schedule, error) {
	csvReader := csv.NewReader(src)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true
	if r.options.Delimiter != 0 {
		csvReader.Comma = r.options.Delimiter
	}

	var headers []string
	if r.options.HasHeaders {
		record, err := csvReader.Read()
		if err == io.EOF {
			return models.NewSchedule(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading header row: %w", err)
		}
		headers = record
	} else {
		headers = fieldNames
	}

	mapping := r.options.Mapping
	if mapping == nil {
		if r.options.AutoDetect && r.options.HasHeaders {
			mapping = AutoDetect(headers)
		} else {
			mapping = DefaultMapping()
		}
	}

	columnIndex := make(map[string]int, len(headers))
	for idx, header := range headers {
		columnIndex[header] = idx
	}

	var rows []models.ScheduleRow
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(rows)+1, err)
		}
		if r.options.SkipEmptyRows && recordIsEmpty(record) {
			continue
		}
		rows = append(rows, parseRecord(record, mapping, columnIndex))
	}

	schedule := models.FromRows(rows)
	schedule.Metadata.ColumnMapping = mapping.AsMap()
	return schedule, nil
}

func recordIsEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseRecord(record []string, mapping *ColumnMapping, columnIndex map[string]int) models.ScheduleRow {
	get := func(field string) string {
		column, ok := mapping.Column(field)
		if !ok {
			return ""
		}
		idx, ok := columnIndex[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	getFloat := func(field string) *float64 {
		value := get(field)
		if value == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		return &parsed
	}

	return models.ScheduleRow{
		RunNumber:      get(FieldRunNumber),
		Block:          get(FieldBlock),
		StartPlace:     get(FieldStartPlace),
		EndPlace:       get(FieldEndPlace),
		StartTime:      get(FieldStartTime),
		EndTime:        get(FieldEndTime),
		TripID:         get(FieldTripID),
		Depot:          get(FieldDepot),
		VehicleClass:   get(FieldVehicleClass),
		VehicleType:    get(FieldVehicleType),
		StartLat:       getFloat(FieldStartLat),
		StartLon:       getFloat(FieldStartLon),
		EndLat:         getFloat(FieldEndLat),
		EndLon:         getFloat(FieldEndLon),
		RouteShapeID:   get(FieldRouteShapeID),
		Kind:           models.ParseRowKind(get(FieldRowType)),
		DutyID:         get(FieldDutyID),
		ShiftID:        get(FieldShiftID),
		RouteShortName: get(FieldRouteShortName),
		Headsign:       get(FieldHeadsign),
	}
}
