package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
)

func TestNewManagerPrometheusMetrics(t *testing.T) {
	cfg := config.Config{Observability: config.Observability{
		ServiceName:     "storefront",
		EnableMetrics:   true,
		MetricsExporter: "prometheus",
		PrometheusPath:  "/metrics",
	}}

	mgr, err := NewManager(fxtest.NewLifecycle(t), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mgr.TracingEnabled())
	assert.True(t, mgr.MetricsEnabled())
	require.NotNil(t, mgr.MetricsHandler())
	require.NotNil(t, mgr.Registry())
	assert.Equal(t, "/metrics", mgr.PrometheusPath())

	rec := httptest.NewRecorder()
	mgr.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewManagerUnknownExportersDisableSignals(t *testing.T) {
	cfg := config.Config{Observability: config.Observability{
		EnableTracing:   true,
		TraceExporter:   "zipkin",
		EnableMetrics:   true,
		MetricsExporter: "statsd",
	}}

	mgr, err := NewManager(fxtest.NewLifecycle(t), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mgr.TracingEnabled())
	assert.False(t, mgr.MetricsEnabled())
	assert.Nil(t, mgr.MetricsHandler())
}
