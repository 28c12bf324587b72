package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtFixer(t *testing.T) {
	assert.Equal(t, "dkg_plugins_api", FmtFixer("dkg-plugins.api"))
}

func TestRepeatedRegistrationSharesVector(t *testing.T) {
	SetupMetricsManager("test", "metrics", prometheus.NewRegistry())

	first := NewCounterVec("calls", []string{"op"})
	second := NewCounterVec("calls", []string{"op"})
	require.Same(t, first, second)

	first.WithLabelValues("publish").Inc()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/metrics", DefaultExportHandler())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_metrics_calls{op="publish"} 1`)
}
