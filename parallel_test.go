package primesieve

import (
	"fmt"
	"testing"
)

// TestParallelMatchesSerial: splitting an interval across workers is
// invisible in the aggregated counts.
func TestParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	const stop = 3000000

	serial := New()
	wantPrimes, err := serial.CountPrimes(0, stop)
	if err != nil {
		t.Fatal(err)
	}

	for _, threads := range []int{1, 2, 3, 8} {
		threads := threads
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			t.Parallel()

			ps := NewParallel()
			ps.SetThreads(threads)
			got, err := ps.CountPrimes(0, stop)
			if err != nil {
				t.Fatal(err)
			}
			if got != wantPrimes {
				t.Fatalf("parallel count = %d, want %d", got, wantPrimes)
			}
		})
	}
}

// TestParallelTuplets: chunk boundaries are aligned so that no tuplet
// pattern straddles two workers.
func TestParallelTuplets(t *testing.T) {
	t.Parallel()

	const stop = 2000000

	serial := New()
	if err := serial.SieveIntervalFlags(0, stop, CountTwins|CountTriplets|CountSextuplets); err != nil {
		t.Fatal(err)
	}

	ps := NewParallel()
	ps.SetThreads(4)
	if err := ps.SieveIntervalFlags(0, stop, CountTwins|CountTriplets|CountSextuplets); err != nil {
		t.Fatal(err)
	}

	if ps.TwinCount() != serial.TwinCount() {
		t.Fatalf("twins: parallel %d, serial %d", ps.TwinCount(), serial.TwinCount())
	}
	if ps.TripletCount() != serial.TripletCount() {
		t.Fatalf("triplets: parallel %d, serial %d", ps.TripletCount(), serial.TripletCount())
	}
	if ps.SextupletCount() != serial.SextupletCount() {
		t.Fatalf("sextuplets: parallel %d, serial %d", ps.SextupletCount(), serial.SextupletCount())
	}
}

// TestParallelSmallInterval: more threads than the interval can use
// degrades gracefully to fewer workers.
func TestParallelSmallInterval(t *testing.T) {
	t.Parallel()

	ps := NewParallel()
	ps.SetThreads(64)
	got, err := ps.CountPrimes(0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 25 {
		t.Fatalf("count = %d, want 25", got)
	}
}

// TestParallelValidation mirrors the serial validation surface.
func TestParallelValidation(t *testing.T) {
	t.Parallel()

	ps := NewParallel()
	if err := ps.SetStart(100); err != nil {
		t.Fatal(err)
	}
	if err := ps.SetStop(10); err != nil {
		t.Fatal(err)
	}
	if err := ps.Sieve(); err == nil {
		t.Fatal("stop < start must fail")
	}

	ps.SetThreads(0)
	if got := ps.Threads(); got != 1 {
		t.Fatalf("SetThreads(0) -> %d, want 1", got)
	}
}

// TestParallelCallbackSingleWorker: a callback run is forced onto one
// worker so primes still arrive in increasing order.
func TestParallelCallbackSingleWorker(t *testing.T) {
	t.Parallel()

	ps := NewParallel()
	ps.SetThreads(8)
	ps.sink = func(uint64) {}
	if err := ps.SetFlags(Callback64Primes); err != nil {
		t.Fatal(err)
	}
	if got := ps.idealThreads(); got != 1 {
		t.Fatalf("idealThreads with callback = %d, want 1", got)
	}
}
