package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"rosterkit.transitops.org/internal/inference"
	"rosterkit.transitops.org/internal/models"
	"rosterkit.transitops.org/internal/validation"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.SchedulesLoadedTotal)
	assert.NotNil(t, m.RowsReadTotal)
	assert.NotNil(t, m.ValidationErrorsTotal)
	assert.NotNil(t, m.DeadheadsInferredTotal)
	assert.NotNil(t, m.SchedulesExportedTotal)
}

func TestNewWithLogger(t *testing.T) {
	m := NewWithLogger(nil)
	assert.NotNil(t, m)
	assert.Nil(t, m.logger)
}

func TestRecordImport(t *testing.T) {
	m := New()

	m.RecordImport(150)
	m.RecordImport(50)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SchedulesLoadedTotal))
	assert.Equal(t, float64(200), testutil.ToFloat64(m.RowsReadTotal))
}

func TestRecordValidation(t *testing.T) {
	m := New()

	result := validation.Result{
		Errors: []validation.Error{
			{Kind: validation.ErrMissingTrip, Category: validation.CategoryIntegrity},
			{Kind: validation.ErrChronology, Category: validation.CategoryContinuity},
			{Kind: validation.ErrLayoverTooShort, Category: validation.CategoryBusinessRule},
			{Kind: validation.ErrDutyTooLong, Category: validation.CategoryBusinessRule},
		},
		Warnings:  []validation.Warning{{Kind: validation.WarnLargeGap}},
		Truncated: true,
	}
	m.RecordValidation(result, 0.25)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationRunsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("integrity")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("continuity")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("business_rule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationWarningsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationTruncatedTotal))
}

func TestRecordInference(t *testing.T) {
	m := New()

	result := inference.Result{
		PullOuts: []models.Deadhead{
			models.NewPullOut("DEPOT", "STOP_A"),
			models.NewPullOut("DEPOT", "STOP_B"),
		},
		PullIns:          []models.Deadhead{models.NewPullIn("STOP_C", "DEPOT")},
		Interlinings:     []models.Deadhead{models.NewInterlining("STOP_A", "STOP_B")},
		IncompleteBlocks: []string{"B7"},
	}
	m.RecordInference(result)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DeadheadsInferredTotal.WithLabelValues("pull_out")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DeadheadsInferredTotal.WithLabelValues("pull_in")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DeadheadsInferredTotal.WithLabelValues("interlining")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.IncompleteBlocksTotal))
}

func TestRecordExport(t *testing.T) {
	m := New()
	m.RecordExport()
	m.RecordExport()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SchedulesExportedTotal))
}
