package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"rosterkit.transitops.org/internal/app"
	"rosterkit.transitops.org/internal/appconf"
	"rosterkit.transitops.org/internal/logging"
	"rosterkit.transitops.org/internal/metrics"
	"rosterkit.transitops.org/internal/reference"
	"rosterkit.transitops.org/internal/validation"
)

// BuildLogger creates the application logger: JSON in production so log
// shippers can parse it, human-readable text everywhere else.
func BuildLogger(env appconf.Environment, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	if env == appconf.Production {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

// BuildApplication assembles the shared dependencies from the global
// CLI flags: config, logger, metrics, and the reference timetable when
// one was given.
func BuildApplication(c *cli.Context) (*app.Application, error) {
	config := appconf.Config{
		Env:     appconf.EnvFlagToEnvironment(c.String("env")),
		Verbose: c.Bool("verbose"),
	}
	logger := BuildLogger(config.Env, config.Verbose)

	application := &app.Application{
		Config:           config,
		ValidationConfig: validation.NewConfig(),
		Logger:           logger,
		Metrics:          metrics.NewWithLogger(logger),
	}

	if path := c.String("timetable"); path != "" {
		tt, err := reference.LoadFromFile(path, logger)
		if err != nil {
			return nil, fmt.Errorf("loading reference timetable: %w", err)
		}
		application.Timetable = tt
		application.Spatial = reference.NewSpatialIndex(tt)
	}

	if addr := c.String("metrics-listen"); addr != "" {
		startMetricsListener(application, addr)
	}

	return application, nil
}

// LoadValidationConfig resolves the validation settings from command
// flags: an explicit rules file wins, then the compliance preset.
func LoadValidationConfig(c *cli.Context) (validation.Config, error) {
	var config validation.Config
	if path := c.String("rules"); path != "" {
		loaded, err := validation.LoadConfig(path)
		if err != nil {
			return config, fmt.Errorf("loading validation rules: %w", err)
		}
		config = loaded
	} else {
		switch validation.ParseComplianceLevel(c.String("compliance")) {
		case validation.ComplianceStrict:
			config = validation.StrictConfig()
		case validation.ComplianceLenient:
			config = validation.LenientConfig()
		default:
			config = validation.NewConfig()
		}
	}

	if c.IsSet("max-errors") {
		config = config.WithMaxErrors(c.Int("max-errors"))
	}
	if c.Bool("no-warnings") {
		config = config.WithWarnings(false)
	}
	return config, nil
}

func startMetricsListener(application *app.Application, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		application.Metrics.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.LogError(application.Logger, "metrics listener stopped", err,
				slog.String("addr", addr))
		}
	}()

	logging.LogOperation(application.Logger, "metrics_listener_started",
		slog.String("addr", addr))
}
