package app

import (
	"log/slog"

	"rosterkit.transitops.org/internal/appconf"
	"rosterkit.transitops.org/internal/metrics"
	"rosterkit.transitops.org/internal/reference"
	"rosterkit.transitops.org/internal/validation"
)

// Application holds the dependencies shared by the CLI commands: the
// global configuration, the logger, the reference timetable when one
// was loaded, and the metrics registry.
type Application struct {
	Config           appconf.Config
	ValidationConfig validation.Config
	Logger           *slog.Logger
	Timetable        *reference.Timetable
	Spatial          *reference.SpatialIndex
	Metrics          *metrics.Metrics
}

// HasTimetable reports whether a reference timetable was loaded.
func (app *Application) HasTimetable() bool {
	return app.Timetable != nil
}
