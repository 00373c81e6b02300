// Package export writes schedules back out as delimited text, with
// configurable column selection, header renaming, and time formatting
// to match downstream scheduling systems.
package export

import (
	"strconv"
	"strings"

	"rosterkit.transitops.org/internal/models"
)

// TimeFormat selects how time values are written.
type TimeFormat int

const (
	// TimeHHMMSS writes HH:MM:SS.
	TimeHHMMSS TimeFormat = iota
	// TimeHHMM writes HH:MM, dropping seconds.
	TimeHHMM
	// TimeSeconds writes plain seconds past midnight.
	TimeSeconds
)

// Column pairs an internal field name with the header the output file
// should carry for it.
type Column struct {
	Field  string
	Header string
}

// NewColumn creates a column whose header matches its field name.
func NewColumn(field string) Column {
	return Column{Field: field, Header: field}
}

// Renamed creates a column with a custom output header.
func Renamed(field, header string) Column {
	return Column{Field: field, Header: header}
}

// Config controls an export run.
type Config struct {
	// Columns to write, in order.
	Columns []Column

	TimeFormat TimeFormat

	// Delimiter is the field separator; 0 means comma.
	Delimiter rune

	// IncludeHeader writes the header row.
	IncludeHeader bool

	// NullValue is written for absent fields.
	NullValue string
}

// NewConfig returns the default configuration: the standard column set,
// HH:MM:SS times, comma-separated, with a header row.
func NewConfig() Config {
	return Config{
		Columns:       defaultColumns(),
		IncludeHeader: true,
	}
}

// WithColumns replaces the column set, using field names as headers.
func (c Config) WithColumns(fields ...string) Config {
	columns := make([]Column, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, NewColumn(field))
	}
	c.Columns = columns
	return c
}

// WithColumnMapping replaces the column set with renamed columns.
func (c Config) WithColumnMapping(columns ...Column) Config {
	c.Columns = columns
	return c
}

// WithTimeFormat sets the time format.
func (c Config) WithTimeFormat(format TimeFormat) Config {
	c.TimeFormat = format
	return c
}

// WithDelimiter sets the field separator.
func (c Config) WithDelimiter(delimiter rune) Config {
	c.Delimiter = delimiter
	return c
}

// WithNullValue sets the placeholder for absent fields.
func (c Config) WithNullValue(value string) Config {
	c.NullValue = value
	return c
}

func defaultColumns() []Column {
	fields := []string{
		"run_number", "block", "start_place", "end_place",
		"start_time", "end_time", "trip_id", "depot",
		"vehicle_class", "vehicle_type",
		"start_lat", "start_lon", "end_lat", "end_lon",
		"route_shape_id",
	}
	columns := make([]Column, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, NewColumn(field))
	}
	return columns
}

// formatTime renders a raw time value in the configured format. Values
// that fail to parse pass through verbatim so no data is lost.
func (c Config) formatTime(raw string) string {
	seconds, ok := models.ParseTimeSeconds(raw)
	if !ok {
		return raw
	}
	switch c.TimeFormat {
	case TimeHHMM:
		full := models.FormatTimeSeconds(seconds)
		return full[:strings.LastIndex(full, ":")]
	case TimeSeconds:
		return strconv.Itoa(seconds)
	default:
		return models.FormatTimeSeconds(seconds)
	}
}
