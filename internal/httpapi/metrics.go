package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the server's Prometheus instruments. A private
// registry keeps test servers from colliding on the global one.
type Metrics struct {
	registry *prometheus.Registry

	agentRuns   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	toolCalls   *prometheus.CounterVec
	sweptTotal  prometheus.Counter
}

// NewMetrics registers the server instruments on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		agentRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remora_agent_runs_total",
				Help: "Total number of agent turns, by agent and outcome",
			},
			[]string{"agent", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "remora_agent_run_duration_seconds",
				Help: "Duration of agent turns",
			},
			[]string{"agent"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remora_tool_calls_total",
				Help: "Total number of tool executions, by tool and outcome",
			},
			[]string{"tool", "status"},
		),
		sweptTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "remora_sessions_swept_total",
				Help: "Total number of idle sessions removed by the sweeper",
			},
		),
	}
	m.registry.MustRegister(m.agentRuns, m.runDuration, m.toolCalls, m.sweptTotal)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSweep records the outcome of one idle-session sweep.
func (m *Metrics) ObserveSweep(removed int) {
	m.sweptTotal.Add(float64(removed))
}

func (m *Metrics) observeRun(agent string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.agentRuns.WithLabelValues(agent, status).Inc()
	m.runDuration.WithLabelValues(agent).Observe(seconds)
}

func (m *Metrics) observeToolCall(tool string, isError bool) {
	status := "ok"
	if isError {
		status = "error"
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
}
