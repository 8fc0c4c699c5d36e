package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New()
	m.ObserveRun("monthly", "ok", 12, time.Now())
	m.ObserveRun("monthly", "empty", 0, time.Now())
	m.AddAdjustments(3)
	m.AddAdjustments(-1)
	m.ActualRecorded()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("monthly", "ok")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.rows.WithLabelValues("monthly")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.adjustments))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actuals))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun("weekly", "ok", 1, time.Now())
		m.AddAdjustments(1)
		m.ActualRecorded()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveRun("weekly", "ok", 4, time.Now())

	e := echo.New()
	e.GET("/metrics", m.Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fertiplan_runs_total{kind="weekly",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
