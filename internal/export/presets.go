package export

// Preset names a predefined export layout.
type Preset int

const (
	// PresetDefault is the standard column set.
	PresetDefault Preset = iota
	// PresetMinimal carries only the essential assignment columns.
	PresetMinimal
	// PresetExtended carries every available column.
	PresetExtended
	// PresetOptibusLike approximates the Optibus import layout. The real
	// format is proprietary; this follows its common conventions.
	PresetOptibusLike
	// PresetHastusLike approximates the HASTUS import layout. The real
	// format is proprietary; this follows its common conventions.
	PresetHastusLike
	// PresetGtfsBlock writes a GTFS-style block assignment table.
	PresetGtfsBlock
)

func (p Preset) String() string {
	switch p {
	case PresetMinimal:
		return "minimal"
	case PresetExtended:
		return "extended"
	case PresetOptibusLike:
		return "optibus"
	case PresetHastusLike:
		return "hastus"
	case PresetGtfsBlock:
		return "gtfs_block"
	default:
		return "default"
	}
}

// ParsePreset resolves a preset name; unknown names map to the default.
func ParsePreset(s string) Preset {
	switch s {
	case "minimal":
		return PresetMinimal
	case "extended":
		return PresetExtended
	case "optibus":
		return PresetOptibusLike
	case "hastus":
		return PresetHastusLike
	case "gtfs_block":
		return PresetGtfsBlock
	default:
		return PresetDefault
	}
}

// Config returns the export configuration for this preset.
func (p Preset) Config() Config {
	switch p {
	case PresetMinimal:
		return NewConfig().WithColumns(
			"run_number", "block", "trip_id", "start_time", "end_time")
	case PresetExtended:
		return NewConfig().WithColumns(
			"run_number", "duty_id", "shift_id", "block",
			"start_place", "end_place", "start_time", "end_time",
			"trip_id", "route_short_name", "headsign", "depot",
			"vehicle_class", "vehicle_type",
			"start_lat", "start_lon", "end_lat", "end_lon",
			"route_shape_id", "row_type")
	case PresetOptibusLike:
		return NewConfig().WithColumnMapping(
			Renamed("run_number", "Run"),
			Renamed("block", "Block"),
			Renamed("row_type", "Activity"),
			Renamed("start_place", "StartStop"),
			Renamed("end_place", "EndStop"),
			Renamed("start_time", "StartTime"),
			Renamed("end_time", "EndTime"),
			Renamed("trip_id", "TripID"),
			Renamed("route_short_name", "Route"),
			Renamed("headsign", "Direction"),
			Renamed("depot", "Depot"),
			Renamed("vehicle_type", "VehicleType"),
		)
	case PresetHastusLike:
		return NewConfig().WithColumnMapping(
			Renamed("duty_id", "DUTY_NO"),
			Renamed("block", "BLOCK_NO"),
			Renamed("run_number", "RUN_NO"),
			Renamed("trip_id", "TRIP_NO"),
			Renamed("route_short_name", "ROUTE"),
			Renamed("start_place", "FROM_STOP"),
			Renamed("end_place", "TO_STOP"),
			Renamed("start_time", "START"),
			Renamed("end_time", "END"),
			Renamed("row_type", "TYPE"),
			Renamed("depot", "GARAGE"),
			Renamed("vehicle_class", "VEH_TYPE"),
		).WithTimeFormat(TimeHHMM)
	case PresetGtfsBlock:
		return NewConfig().WithColumnMapping(
			Renamed("block", "block_id"),
			Renamed("trip_id", "trip_id"),
			Renamed("start_time", "start_time"),
			Renamed("end_time", "end_time"),
			Renamed("start_place", "start_stop_id"),
			Renamed("end_place", "end_stop_id"),
			Renamed("route_shape_id", "shape_id"),
		)
	default:
		return NewConfig()
	}
}
