// Package metrics provides Prometheus metrics for the rosterkit
// pipeline: imports, validation findings, and deadhead inference.
package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"rosterkit.transitops.org/internal/inference"
	"rosterkit.transitops.org/internal/validation"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// Import metrics
	SchedulesLoadedTotal prometheus.Counter
	RowsReadTotal        prometheus.Counter

	// Validation metrics
	ValidationRunsTotal      prometheus.Counter
	ValidationErrorsTotal    *prometheus.CounterVec
	ValidationWarningsTotal  prometheus.Counter
	ValidationTruncatedTotal prometheus.Counter
	ValidationDuration       prometheus.Histogram

	// Inference metrics
	DeadheadsInferredTotal *prometheus.CounterVec
	IncompleteBlocksTotal  prometheus.Counter

	// Export metrics
	SchedulesExportedTotal prometheus.Counter

	// logger for error reporting
	logger *slog.Logger
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	schedulesLoadedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_schedules_loaded_total",
		Help: "Total number of schedule files loaded",
	})

	rowsReadTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_rows_read_total",
		Help: "Total number of schedule rows read",
	})

	validationRunsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_validation_runs_total",
		Help: "Total number of validation runs",
	})

	validationErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosterkit_validation_errors_total",
			Help: "Total validation errors by category",
		},
		[]string{"category"},
	)

	validationWarningsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_validation_warnings_total",
		Help: "Total validation warnings",
	})

	validationTruncatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_validation_truncated_total",
		Help: "Validation runs stopped early by the error budget",
	})

	validationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rosterkit_validation_duration_seconds",
		Help:    "Validation run latency distribution",
		Buckets: prometheus.DefBuckets,
	})

	deadheadsInferredTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosterkit_deadheads_inferred_total",
			Help: "Total inferred deadhead movements by kind",
		},
		[]string{"kind"},
	)

	incompleteBlocksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_incomplete_blocks_total",
		Help: "Blocks skipped by inference for missing depot information",
	})

	schedulesExportedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rosterkit_schedules_exported_total",
		Help: "Total number of schedule files exported",
	})

	// Register all metrics with the custom registry
	registry.MustRegister(
		schedulesLoadedTotal,
		rowsReadTotal,
		validationRunsTotal,
		validationErrorsTotal,
		validationWarningsTotal,
		validationTruncatedTotal,
		validationDuration,
		deadheadsInferredTotal,
		incompleteBlocksTotal,
		schedulesExportedTotal,
	)

	return &Metrics{
		Registry:                 registry,
		SchedulesLoadedTotal:     schedulesLoadedTotal,
		RowsReadTotal:            rowsReadTotal,
		ValidationRunsTotal:      validationRunsTotal,
		ValidationErrorsTotal:    validationErrorsTotal,
		ValidationWarningsTotal:  validationWarningsTotal,
		ValidationTruncatedTotal: validationTruncatedTotal,
		ValidationDuration:       validationDuration,
		DeadheadsInferredTotal:   deadheadsInferredTotal,
		IncompleteBlocksTotal:    incompleteBlocksTotal,
		SchedulesExportedTotal:   schedulesExportedTotal,
		logger:                   logger,
	}
}

// RecordImport counts one loaded schedule and its rows.
func (m *Metrics) RecordImport(rows int) {
	m.SchedulesLoadedTotal.Inc()
	m.RowsReadTotal.Add(float64(rows))
}

// RecordValidation counts one validation run's findings.
func (m *Metrics) RecordValidation(result validation.Result, seconds float64) {
	m.ValidationRunsTotal.Inc()
	m.ValidationDuration.Observe(seconds)
	for _, err := range result.Errors {
		m.ValidationErrorsTotal.WithLabelValues(err.Category.String()).Inc()
	}
	m.ValidationWarningsTotal.Add(float64(len(result.Warnings)))
	if result.Truncated {
		m.ValidationTruncatedTotal.Inc()
	}
}

// RecordInference counts one inference run's movements.
func (m *Metrics) RecordInference(result inference.Result) {
	m.DeadheadsInferredTotal.WithLabelValues("pull_out").Add(float64(len(result.PullOuts)))
	m.DeadheadsInferredTotal.WithLabelValues("pull_in").Add(float64(len(result.PullIns)))
	m.DeadheadsInferredTotal.WithLabelValues("interlining").Add(float64(len(result.Interlinings)))
	m.IncompleteBlocksTotal.Add(float64(len(result.IncompleteBlocks)))
}

// RecordExport counts one exported schedule file.
func (m *Metrics) RecordExport() {
	m.SchedulesExportedTotal.Inc()
}
