package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/montyhall/internal/simulation"
)

const namespace = "montyhall"

// RunMetrics collects Prometheus metrics for simulation runs. Each instance
// owns its registry, so several can coexist in one process.
//
// RunMetrics implements orchestration.RunObserver.
type RunMetrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	trials   prometheus.Counter
	wins     *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	workers  prometheus.Gauge
	active   prometheus.Gauge
}

// NewRunMetrics creates and registers the run metrics along with the Go
// runtime and process collectors.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	m := &RunMetrics{
		registry: reg,
		trials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Trial pairs completed.",
		}),
		wins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wins_total",
			Help:      "Winning trials by strategy.",
		}, []string{"strategy"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of simulation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Workers used by the current or last run.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Runs in progress.",
		}),
	}
	reg.MustRegister(
		m.trials, m.wins, m.runs, m.duration, m.workers, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// RunStarted records the worker count and marks a run active.
func (m *RunMetrics) RunStarted(_ uint64, workers int) {
	m.workers.Set(float64(workers))
	m.active.Inc()
}

// ChunkCompleted adds a chunk's counts. Safe for concurrent use.
func (m *RunMetrics) ChunkCompleted(delta simulation.Tally) {
	m.trials.Add(float64(delta.Trials))
	m.wins.WithLabelValues(simulation.Stay.String()).Add(float64(delta.StayWins))
	m.wins.WithLabelValues(simulation.Switch.String()).Add(float64(delta.SwitchWins))
}

// RunFinished records the run's duration and status.
func (m *RunMetrics) RunFinished(_ simulation.Tally, elapsed time.Duration, err error) {
	m.active.Dec()
	m.duration.Observe(elapsed.Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runs.WithLabelValues(status).Inc()
}

// Registry returns the registry holding the metrics.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WritePrometheus writes all metrics in the Prometheus exposition format.
func (m *RunMetrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
