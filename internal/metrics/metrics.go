// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from sieve runs.
//
// The package is intentionally minimal and opinionated:
//
//   - It exposes a narrow interface (Backend) focused on counters and
//     timing data (histograms).
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no
//     real backend is configured.
//   - Concrete metric systems stay isolated in subpackages (prompush,
//     datadog); the engine and facade depend only on this interface.
//
// The primary use case is long-running services that embed the sieve
// (batch jobs, nth-prime APIs) and want per-run visibility without
// coupling the library to a specific metrics system.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so we can plug in Prometheus, Datadog, etc.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordRun measures one sieve invocation: latency plus
// success/failure outcome.
func RecordRun(job string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"status": status,
	}

	backend.IncCounter("sieve_runs_total", 1, lbls)
	backend.ObserveHistogram("sieve_run_duration_seconds", d.Seconds(), lbls)
}

// RecordSegments counts processed sieve segments for the given job.
func RecordSegments(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sieve_segments_total", float64(delta), Labels{
		"job": job,
	})
}

// RecordResults increments a result-level counter for the given job
// and kind.
//
// Typical kinds mirror the count flags:
//   - "primes"
//   - "twins"
//   - "triplets" ... "septuplets"
func RecordResults(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sieve_results_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
