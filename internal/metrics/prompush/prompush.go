// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang counter and summary collectors.
//   - Mapping the common labels (job, status, kind) onto Prometheus labels.
//     The job label is exported as "sieve_job", because the Pushgateway
//     client rejects pushed metrics that carry their own "job" label.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead
//     of exposing an HTTP scrape endpoint, which fits the batch-job nature
//     of a sieve run.
//
// The package intentionally contains all Prometheus-specific dependencies so
// that the rest of the project remains decoupled from Prometheus and can swap
// to alternative backends (e.g. Datadog, StatsD) without changes elsewhere.
package prompush

import (
	"fmt"

	"primesieve/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	runCounter  *prometheus.CounterVec // "sieve_runs_total"
	runDuration *prometheus.SummaryVec // "sieve_run_duration_seconds"

	segmentCounter prometheus.Counter     // "sieve_segments_total"
	resultCounter  *prometheus.CounterVec // "sieve_results_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name.
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "primesieve"
	}

	reg := prometheus.NewRegistry()

	runCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sieve_runs_total",
			Help: "Total number of sieve runs, partitioned by job and status.",
		},
		[]string{"sieve_job", "status"},
	)
	runDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "sieve_run_duration_seconds",
			Help:       "Duration of sieve runs in seconds, partitioned by job and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"sieve_job", "status"},
	)
	segmentCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sieve_segments_total",
			Help: "Total number of sieve segments processed.",
		},
	)
	resultCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sieve_results_total",
			Help: "Result counts per kind (primes, twins, ..., septuplets).",
		},
		[]string{"kind"},
	)

	if err := reg.Register(runCounter); err != nil {
		return nil, fmt.Errorf("prompush: register run counter: %w", err)
	}
	if err := reg.Register(runDuration); err != nil {
		return nil, fmt.Errorf("prompush: register run summary: %w", err)
	}
	if err := reg.Register(segmentCounter); err != nil {
		return nil, fmt.Errorf("prompush: register segment counter: %w", err)
	}
	if err := reg.Register(resultCounter); err != nil {
		return nil, fmt.Errorf("prompush: register result counter: %w", err)
	}

	return &Backend{
		gatewayURL:     gatewayURL,
		jobName:        jobName,
		reg:            reg,
		runCounter:     runCounter,
		runDuration:    runDuration,
		segmentCounter: segmentCounter,
		resultCounter:  resultCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "sieve_runs_total":
		if b.runCounter == nil {
			return
		}
		b.runCounter.WithLabelValues(labels["job"], labels["status"]).Add(delta)

	case "sieve_segments_total":
		if b.segmentCounter == nil {
			return
		}
		b.segmentCounter.Add(delta)

	case "sieve_results_total":
		if b.resultCounter == nil {
			return
		}
		b.resultCounter.WithLabelValues(labels["kind"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "sieve_run_duration_seconds" || b.runDuration == nil {
		return
	}
	b.runDuration.WithLabelValues(labels["job"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
