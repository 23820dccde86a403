package primesieve

import (
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest interval worth handing to a worker; below
// this the per-worker setup (sieving prime generation) dominates.
const minChunk = 1 << 22

// ParallelSieve counts primes and prime k-tuplets using multiple
// worker goroutines. The interval is split into per-worker
// sub-intervals, one PrimeSieve instance runs per worker, and counts
// are aggregated on completion. Workers share only the configuration
// and, via the root facade's mutex, status updates and the user
// callback.
//
// Printing and callbacks require strictly increasing output, so any
// print or callback flag forces a single worker.
type ParallelSieve struct {
	PrimeSieve
	threads int
}

// NewParallel returns a ParallelSieve defaulting to one worker per
// logical CPU.
func NewParallel() *ParallelSieve {
	ps := &ParallelSieve{threads: runtime.NumCPU()}
	ps.flags = CountPrimes
	ps.preSieve = 19
	ps.status = -1
	ps.out = os.Stdout
	ps.statusOut = os.Stdout
	ps.SetSieveSize(DefaultSieveSize())
	return ps
}

// SetThreads sets the number of worker goroutines, clamped to at
// least 1.
func (ps *ParallelSieve) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	ps.threads = n
}

// Threads returns the configured worker count.
func (ps *ParallelSieve) Threads() int { return ps.threads }

// Sieve runs the interval across the configured workers.
func (ps *ParallelSieve) Sieve() error {
	if ps.stop < ps.start {
		return ErrStopBelowStart
	}

	threads := ps.idealThreads()
	if threads == 1 {
		return ps.PrimeSieve.Sieve()
	}

	ps.Reset()

	var g errgroup.Group
	workers := make([]*PrimeSieve, 0, threads)
	lo := ps.start
	for i := 0; i < threads && lo <= ps.stop; i++ {
		hi := ps.chunkStop(lo, i, threads)
		w := ps.newWorker(lo, hi)
		workers = append(workers, w)
		g.Go(w.Sieve)
		lo = hi + 1
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, w := range workers {
		for k := range ps.counts {
			ps.counts[k] += w.counts[k]
		}
	}
	if ps.isStatus() {
		ps.finishStatus()
	}
	return nil
}

// idealThreads bounds the worker count by the interval size and
// disables parallelism for ordered output.
func (ps *ParallelSieve) idealThreads() int {
	if ps.flags&(printMaskAll|callbackMaskAll) != 0 {
		return 1
	}
	threads := ps.threads
	if max := int((ps.stop-ps.start)/minChunk) + 1; threads > max {
		threads = max
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}

// chunkStop returns the inclusive upper bound of worker i's
// sub-interval. Boundaries are aligned to numbers congruent 6 mod 30
// so that no k-tuplet pattern (always contained in one 30-number
// wheel window) can straddle two workers.
func (ps *ParallelSieve) chunkStop(lo uint64, i, threads int) uint64 {
	if i == threads-1 {
		return ps.stop
	}
	size := (ps.stop - ps.start) / uint64(threads)
	hi := lo + size
	if hi < lo || hi >= ps.stop-36 {
		return ps.stop
	}
	hi += 30 - (hi % 30)
	hi += 6
	return hi
}

// SieveInterval sieves [start, stop] across the configured workers.
// (The promoted PrimeSieve methods dispatch to the serial Sieve, so
// the interval entry points are overridden here.)
func (ps *ParallelSieve) SieveInterval(start, stop uint64) error {
	if err := ps.SetStart(start); err != nil {
		return err
	}
	if err := ps.SetStop(stop); err != nil {
		return err
	}
	return ps.Sieve()
}

// SieveIntervalFlags sieves [start, stop] with the given flags across
// the configured workers.
func (ps *ParallelSieve) SieveIntervalFlags(start, stop uint64, f Flag) error {
	if err := ps.SetFlags(f); err != nil {
		return err
	}
	return ps.SieveInterval(start, stop)
}

// CountPrimes counts the primes in [start, stop] using all workers.
func (ps *ParallelSieve) CountPrimes(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountPrimes); err != nil {
		return 0, err
	}
	return ps.PrimeCount(), nil
}

// newWorker clones the configuration into a child instance bound to
// [lo, hi]. Children forward status updates to the root facade.
func (ps *ParallelSieve) newWorker(lo, hi uint64) *PrimeSieve {
	return &PrimeSieve{
		start:     lo,
		stop:      hi,
		sieveSize: ps.sieveSize,
		preSieve:  ps.preSieve,
		flags:     ps.flags,
		status:    -1,
		sink:      ps.sink,
		out:       ps.out,
		statusOut: ps.statusOut,
		parent:    &ps.PrimeSieve,
	}
}
