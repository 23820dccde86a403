package sieve

import (
	"fmt"
	"io"
)

// Config describes one engine run over [Start, Stop].
//
// Start must be >= 7: the facade handles 2, 3, 5 and the tuplets that
// straddle them before invoking the engine. SieveBytes must be a
// power of two (the facade's SetSieveSize guarantees it).
type Config struct {
	Start, Stop uint64
	SieveBytes  int
	PreSieve    int

	// CountMask / PrintMask enable counting / printing per tuplet
	// size: bit 0 = primes, bit k = k-tuplets up to septuplets.
	CountMask uint8
	PrintMask uint8

	// Out receives printed primes and tuplets. May be nil when
	// PrintMask is zero.
	Out io.Writer

	// Sink, when non-nil, receives every prime in increasing order.
	Sink func(uint64)

	// OnSegment, when non-nil, is invoked after each finished segment
	// with the number of integers the segment spans.
	OnSegment func(span uint64)
}

// Result carries the outcome of a run.
type Result struct {
	// Counts holds primes, twins, ..., septuplets (indexes 0..6).
	Counts [7]uint64

	// Checksum is an xxh3 fingerprint of the sieved bitmap stream. It
	// depends only on [Start, Stop], never on segment size or
	// pre-sieve configuration, which makes it a cheap cross-check
	// that tuning knobs are invisible.
	Checksum uint64

	// Segments is the number of segments processed.
	Segments int
}

// Sieve runs the segmented sieve over cfg's interval. It is a
// blocking, single-threaded compute call; parallelism belongs to the
// caller, which may run several engines over disjoint sub-intervals.
func Sieve(cfg Config) (Result, error) {
	f := newFinder(cfg.CountMask, cfg.PrintMask, cfg.Out, cfg.Sink, cfg.OnSegment)

	drv, err := newEratosthenes(cfg.Start, cfg.Stop, cfg.SieveBytes, cfg.PreSieve, f.segment)
	if err != nil {
		return Result{}, err
	}
	if err := seedSievingPrimes(drv); err != nil {
		return Result{}, err
	}
	drv.finish()

	if f.err != nil {
		return Result{}, fmt.Errorf("sieve: write output: %w", f.err)
	}
	return Result{
		Counts:   f.counts,
		Checksum: drv.digest.Sum64(),
		Segments: drv.segments,
	}, nil
}
