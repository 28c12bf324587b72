package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkg-node/dkg-plugins/pkg/metrics"
)

type Metrics struct {
	apiResponseTime *prometheus.HistogramVec
	apiErrorCounter *prometheus.CounterVec
	dkgRequestTime  *prometheus.HistogramVec
	dkgError        *prometheus.CounterVec
	toolCallCounter *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime: metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter: metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		dkgRequestTime:  metrics.NewHistogramVec("dkg_request_time", []string{"operation"}),
		dkgError:        metrics.NewCounterVec("dkg_error", []string{"operation"}),
		toolCallCounter: metrics.NewCounterVec("mcp_tool_call", []string{"tool", "result"}),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ToolCallInc(tool string, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	m.toolCallCounter.WithLabelValues(tool, result).Inc()
}

// ObserveRequest times one DKG node operation.
func (m *Metrics) ObserveRequest(operation string) func(err error) {
	timer := prometheus.NewTimer(m.dkgRequestTime.WithLabelValues(operation))
	return func(err error) {
		timer.ObserveDuration()
		if err != nil {
			m.dkgError.WithLabelValues(operation).Inc()
		}
	}
}
