package validation

import (
	"fmt"
	"sort"

	"rosterkit.transitops.org/internal/models"
	"rosterkit.transitops.org/internal/reference"
)

// coordPlausibilityRadiusMeters is how far a revenue row's coordinate
// may sit from the nearest reference stop before it is flagged.
const coordPlausibilityRadiusMeters = 500.0

// IntegrityChecker validates schedule references against the reference
// timetable: trip ids, stop ids used as places, and shape ids. Severity
// follows the configured compliance level.
type IntegrityChecker struct {
	timetable *reference.Timetable
	spatial   *reference.SpatialIndex
	config    Config
}

// CheckResult holds the findings of one checker in isolation.
type CheckResult struct {
	Errors   []Error
	Warnings []Warning
}

// IsValid reports whether the check produced no errors.
func (r CheckResult) IsValid() bool { return len(r.Errors) == 0 }

// WarningsOfKind filters the check's warnings to one kind.
func (r CheckResult) WarningsOfKind(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// NewIntegrityChecker creates a checker over the given timetable.
func NewIntegrityChecker(tt *reference.Timetable, config Config) *IntegrityChecker {
	return &IntegrityChecker{timetable: tt, config: config}
}

// WithSpatialIndex enables the coordinate plausibility check: revenue
// rows whose coordinates sit far from every reference stop are flagged.
func (c *IntegrityChecker) WithSpatialIndex(idx *reference.SpatialIndex) *IntegrityChecker {
	c.spatial = idx
	return c
}

// CheckRow validates one row's references.
func (c *IntegrityChecker) CheckRow(row models.ScheduleRow, rowIndex int) CheckResult {
	var result CheckResult

	if row.TripID != "" && !c.timetable.HasTrip(row.TripID) {
		switch c.config.Compliance {
		case ComplianceStrict:
			result.Errors = append(result.Errors, Error{
				Kind:     ErrMissingTrip,
				Category: CategoryIntegrity,
				Message:  fmt.Sprintf("trip %q not found in reference timetable", row.TripID),
				Context:  fmt.Sprintf("row %d, field trip_id", rowIndex),
			})
		case ComplianceStandard:
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnTripNotFound,
				Message: fmt.Sprintf("trip %q not found in reference timetable", row.TripID),
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
	}

	// Place and coordinate checks apply to revenue rows only; deadheads
	// legitimately reference depots and free-text locations.
	if row.IsRevenue() {
		c.checkStop(&result, row.StartPlace, "start_place", rowIndex)
		c.checkStop(&result, row.EndPlace, "end_place", rowIndex)
		c.checkCoordinates(&result, row, rowIndex)
	}

	if row.RouteShapeID != "" && !c.timetable.HasShape(row.RouteShapeID) {
		switch c.config.Compliance {
		case ComplianceStrict:
			result.Errors = append(result.Errors, Error{
				Kind:     ErrMissingShape,
				Category: CategoryIntegrity,
				Message:  fmt.Sprintf("shape %q not found in reference timetable", row.RouteShapeID),
				Context:  fmt.Sprintf("row %d, field route_shape_id", rowIndex),
			})
		case ComplianceStandard:
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnShapeNotFound,
				Message: fmt.Sprintf("shape %q not found in reference timetable", row.RouteShapeID),
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
	}

	return result
}

func (c *IntegrityChecker) checkStop(result *CheckResult, place, field string, rowIndex int) {
	if place == "" || c.timetable.HasStop(place) {
		return
	}
	switch c.config.Compliance {
	case ComplianceStrict:
		result.Errors = append(result.Errors, Error{
			Kind:     ErrMissingStop,
			Category: CategoryIntegrity,
			Message:  fmt.Sprintf("stop %q not found in reference timetable", place),
			Context:  fmt.Sprintf("row %d, field %s", rowIndex, field),
		})
	case ComplianceStandard:
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnStopNotFound,
			Message: fmt.Sprintf("stop %q (%s) not found in reference timetable", place, field),
			Context: fmt.Sprintf("row %d", rowIndex),
		})
	}
}

func (c *IntegrityChecker) checkCoordinates(result *CheckResult, row models.ScheduleRow, rowIndex int) {
	if c.spatial == nil || c.config.Compliance == ComplianceLenient {
		return
	}
	check := func(lat, lon *float64, field string) {
		if lat == nil || lon == nil {
			return
		}
		nearest, ok := c.spatial.NearestStop(*lat, *lon)
		if !ok || nearest.DistanceMeters <= coordPlausibilityRadiusMeters {
			return
		}
		result.Warnings = append(result.Warnings, Warning{
			Kind: WarnImplausibleCoordinates,
			Message: fmt.Sprintf("%s coordinate is %.0f m from the nearest reference stop %q",
				field, nearest.DistanceMeters, nearest.StopID),
			Context: fmt.Sprintf("row %d", rowIndex),
		})
	}
	check(row.StartLat, row.StartLon, "start")
	check(row.EndLat, row.EndLon, "end")
}

// CheckSchedule validates every row's references, in row order.
func (c *IntegrityChecker) CheckSchedule(schedule *models.Schedule) CheckResult {
	var combined CheckResult
	for idx, row := range schedule.Rows() {
		rowResult := c.CheckRow(row, idx)
		combined.Errors = append(combined.Errors, rowResult.Errors...)
		combined.Warnings = append(combined.Warnings, rowResult.Warnings...)
	}
	return combined
}

// MissingReferences aggregates every distinct unresolved identifier,
// regardless of compliance level.
type MissingReferences struct {
	TripIDs  []string
	StopIDs  []string
	ShapeIDs []string
}

// IsEmpty reports whether every reference resolved.
func (m MissingReferences) IsEmpty() bool {
	return len(m.TripIDs) == 0 && len(m.StopIDs) == 0 && len(m.ShapeIDs) == 0
}

// TotalCount returns the number of distinct missing identifiers.
func (m MissingReferences) TotalCount() int {
	return len(m.TripIDs) + len(m.StopIDs) + len(m.ShapeIDs)
}

// MissingReferences collects the distinct unresolved trip, stop, and
// shape ids across the whole schedule, sorted for stable output.
func (c *IntegrityChecker) MissingReferences(schedule *models.Schedule) MissingReferences {
	trips := make(map[string]struct{})
	stops := make(map[string]struct{})
	shapes := make(map[string]struct{})

	for _, row := range schedule.Rows() {
		if row.TripID != "" && !c.timetable.HasTrip(row.TripID) {
			trips[row.TripID] = struct{}{}
		}
		if row.IsRevenue() {
			if row.StartPlace != "" && !c.timetable.HasStop(row.StartPlace) {
				stops[row.StartPlace] = struct{}{}
			}
			if row.EndPlace != "" && !c.timetable.HasStop(row.EndPlace) {
				stops[row.EndPlace] = struct{}{}
			}
		}
		if row.RouteShapeID != "" && !c.timetable.HasShape(row.RouteShapeID) {
			shapes[row.RouteShapeID] = struct{}{}
		}
	}

	return MissingReferences{
		TripIDs:  sortedKeys(trips),
		StopIDs:  sortedKeys(stops),
		ShapeIDs: sortedKeys(shapes),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
