// Package primesieve enumerates and counts prime numbers and prime
// k-tuplets (twins, triplets, ..., septuplets) in an interval
// [start, stop] of 64-bit unsigned integers.
//
// The heavy lifting is a segmented sieve of Eratosthenes with wheel-30
// factorization, pre-sieving of small primes, and bucketed scheduling
// of medium and large sieving primes (see internal/sieve). This
// package is the facade: configuration, small-prime special cases,
// status reporting, and the convenience entry points.
package primesieve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/klauspost/cpuid/v2"

	"primesieve/internal/metrics"
	"primesieve/internal/pmath"
	"primesieve/internal/sieve"
)

// Flag selects what a sieve run counts, prints, and reports.
type Flag int

const (
	CountPrimes Flag = 1 << iota
	CountTwins
	CountTriplets
	CountQuadruplets
	CountQuintuplets
	CountSextuplets
	CountSeptuplets
	PrintPrimes
	PrintTwins
	PrintTriplets
	PrintQuadruplets
	PrintQuintuplets
	PrintSextuplets
	PrintSeptuplets
	Callback32Primes
	Callback64Primes
	Callback32ObjPrimes
	Callback64ObjPrimes
	CalculateStatus
	PrintStatus

	// flagLimit bounds the valid flag bitset; SetFlags rejects values
	// at or above it.
	flagLimit Flag = 1 << 20
)

const (
	countMaskAll    = CountPrimes | CountTwins | CountTriplets | CountQuadruplets | CountQuintuplets | CountSextuplets | CountSeptuplets
	printMaskAll    = PrintPrimes | PrintTwins | PrintTriplets | PrintQuadruplets | PrintQuintuplets | PrintSextuplets | PrintSeptuplets
	callbackMaskAll = Callback32Primes | Callback64Primes | Callback32ObjPrimes | Callback64ObjPrimes
)

// MaxStop is the largest valid start/stop value. The wheel positions a
// prime's first multiple up to 6 primes (p < 2^32) beyond the minimum,
// and the big-prime engine files multiples a few segments ahead, so
// candidates may be advanced by up to 10*(2^32-1) without overflowing
// a uint64.
const MaxStop = math.MaxUint64 - 10*math.MaxUint32

// Error kinds reported at configuration time or at the start of a run.
var (
	ErrStopBelowStart = errors.New("STOP must be >= START")
	ErrNumberTooLarge = errors.New("number must be <= 2^64 - 10*(2^32-1) - 1")
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrNilCallback    = errors.New("callback must not be nil")
)

// PrimeSieve sieves primes and prime k-tuplets in [start, stop]. The
// zero value is not usable; call New. A PrimeSieve is not safe for
// concurrent use; run one instance per goroutine (see ParallelSieve).
type PrimeSieve struct {
	start     uint64
	stop      uint64
	sieveSize int // KiB
	preSieve  int
	flags     Flag

	counts   [7]uint64
	status   float64
	seconds  float64
	checksum uint64
	segments int

	interval  float64
	processed uint64

	sink      func(uint64)
	out       io.Writer
	statusOut io.Writer

	// parent is set on worker instances of a parallel run; status and
	// callback serialization happen on the root instance's mutex.
	parent *PrimeSieve
	mu     sync.Mutex
}

// New returns a PrimeSieve with the default configuration: count
// primes, pre-sieve 19, and a sieve size matching the CPU's L1 data
// cache.
func New() *PrimeSieve {
	ps := &PrimeSieve{
		flags:     CountPrimes,
		preSieve:  19,
		status:    -1,
		out:       os.Stdout,
		statusOut: os.Stdout,
	}
	ps.SetSieveSize(DefaultSieveSize())
	return ps
}

// DefaultSieveSize returns the CPU's L1 data cache size in KiB, or 32
// when detection fails. Segments that fit the L1 cache give the best
// cross-off throughput for intervals below about 10^15.
func DefaultSieveSize() int {
	if kib := cpuid.CPU.Cache.L1D / 1024; kib > 0 {
		return kib
	}
	return 32
}

// SetStart sets the sieve interval's lower bound.
func (ps *PrimeSieve) SetStart(start uint64) error {
	if start > MaxStop {
		return fmt.Errorf("START: %w", ErrNumberTooLarge)
	}
	ps.start = start
	return nil
}

// SetStop sets the sieve interval's upper bound.
func (ps *PrimeSieve) SetStop(stop uint64) error {
	if stop > MaxStop {
		return fmt.Errorf("STOP: %w", ErrNumberTooLarge)
	}
	ps.stop = stop
	return nil
}

// SetSieveSize sets the segment size in KiB. The value is clamped to
// [1, 4096] and rounded up to the next power of two.
func (ps *PrimeSieve) SetSieveSize(kib int) {
	if kib < 1 {
		kib = 1
	}
	ps.sieveSize = pmath.InBetween(1, int(pmath.NextPowerOf2(uint64(kib))), 4096)
}

// SetPreSieve sets the largest pre-sieved prime. The value is clamped
// to [13, 23]; 13 uses a 1001-byte pattern, 23 about 7 MB.
func (ps *PrimeSieve) SetPreSieve(limit int) {
	ps.preSieve = pmath.InBetween(13, limit, 23)
}

// SetFlags replaces the flag bitset.
func (ps *PrimeSieve) SetFlags(f Flag) error {
	if f < 0 || f >= flagLimit {
		return ErrInvalidFlags
	}
	ps.flags = f
	return nil
}

// AddFlags ors additional flags into the bitset.
func (ps *PrimeSieve) AddFlags(f Flag) error {
	if f < 0 || f >= flagLimit {
		return ErrInvalidFlags
	}
	ps.flags |= f
	return nil
}

// SetOutput redirects printed primes, tuplets and status. Primarily a
// seam for tests and for the console application.
func (ps *PrimeSieve) SetOutput(w io.Writer) {
	ps.out = w
	ps.statusOut = w
}

// Getters.

func (ps *PrimeSieve) Start() uint64           { return ps.start }
func (ps *PrimeSieve) Stop() uint64            { return ps.stop }
func (ps *PrimeSieve) SieveSize() int          { return ps.sieveSize }
func (ps *PrimeSieve) PreSieve() int           { return ps.preSieve }
func (ps *PrimeSieve) Flags() Flag             { return ps.flags }
func (ps *PrimeSieve) PrimeCount() uint64      { return ps.counts[0] }
func (ps *PrimeSieve) TwinCount() uint64       { return ps.counts[1] }
func (ps *PrimeSieve) TripletCount() uint64    { return ps.counts[2] }
func (ps *PrimeSieve) QuadrupletCount() uint64 { return ps.counts[3] }
func (ps *PrimeSieve) QuintupletCount() uint64 { return ps.counts[4] }
func (ps *PrimeSieve) SextupletCount() uint64  { return ps.counts[5] }
func (ps *PrimeSieve) SeptupletCount() uint64  { return ps.counts[6] }

// Status returns the current progress in percent, or -1 before the
// first run.
func (ps *PrimeSieve) Status() float64 { return ps.status }

// Seconds returns the wall-clock duration of the last run.
func (ps *PrimeSieve) Seconds() float64 { return ps.seconds }

// Checksum returns the xxh3 fingerprint of the last run's sieved
// bitmap stream; it depends only on the interval, never on segment
// size or pre-sieve tuning.
func (ps *PrimeSieve) Checksum() uint64 { return ps.checksum }

// Reset zeroes the counters and sets the status back to -1.
func (ps *PrimeSieve) Reset() {
	for i := range ps.counts {
		ps.counts[i] = 0
	}
	ps.processed = 0
	ps.interval = float64(ps.stop-ps.start) + 1
	ps.status = -1
	ps.seconds = 0
}

func (ps *PrimeSieve) isStatus() bool {
	return ps.flags&(CalculateStatus|PrintStatus) != 0
}

func (ps *PrimeSieve) isCallback() bool {
	return ps.flags&callbackMaskAll != 0 && ps.sink != nil
}

func (ps *PrimeSieve) root() *PrimeSieve {
	if ps.parent != nil {
		return ps.parent.root()
	}
	return ps
}

// updateStatus accumulates processed numbers and prints "\rNN%" on
// each whole-percent increase. Worker instances forward to the root
// facade, which serializes updates under its mutex.
func (ps *PrimeSieve) updateStatus(span uint64) {
	if ps.parent != nil {
		ps.parent.updateStatus(span)
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.processed += span
	old := int(ps.status)
	s := float64(ps.processed) / ps.interval * 100
	if s > 100 {
		s = 100
	}
	ps.status = s
	if ps.flags&PrintStatus != 0 {
		if cur := int(s); cur > old {
			fmt.Fprintf(ps.statusOut, "\r%d%%", cur)
		}
	}
}

// Sieve runs the engine over [start, stop] with the current
// configuration. Counts from a failed run are undefined.
func (ps *PrimeSieve) Sieve() (err error) {
	if ps.stop < ps.start {
		return ErrStopBelowStart
	}
	t0 := time.Now()
	defer func() {
		metrics.RecordRun("sieve", err, time.Since(t0))
	}()

	ps.Reset()
	if ps.isStatus() {
		ps.updateStatus(0)
	}

	// Primes 2, 3, 5 and the tuplets straddling 5/7 never appear on
	// the wheel; a fixed table handles them up front.
	if ps.start <= 5 {
		for i := range smallPrimes {
			ps.doSmallPrime(&smallPrimes[i])
		}
	}

	if ps.stop >= 7 {
		if err = ps.sieveWheel(); err != nil {
			return err
		}
	}

	ps.seconds = time.Since(t0).Seconds()
	if ps.isStatus() {
		ps.finishStatus()
	}
	return nil
}

// sieveWheel runs the segmented engine over [max(start,7), stop].
func (ps *PrimeSieve) sieveWheel() error {
	start := ps.start
	if start < 7 {
		start = 7
	}

	out := ps.out
	var bw *bufio.Writer
	if ps.flags&printMaskAll != 0 {
		bw = bufio.NewWriter(ps.out)
		out = bw
	}

	var sink func(uint64)
	if ps.isCallback() {
		sink = ps.callbackSink()
	}
	var onSegment func(uint64)
	if ps.isStatus() {
		onSegment = ps.updateStatus
	}

	res, err := sieve.Sieve(sieve.Config{
		Start:      start,
		Stop:       ps.stop,
		SieveBytes: ps.sieveSize * 1024,
		PreSieve:   ps.preSieve,
		CountMask:  uint8(ps.flags & countMaskAll),
		PrintMask:  uint8((ps.flags & printMaskAll) >> 7),
		Out:        out,
		Sink:       sink,
		OnSegment:  onSegment,
	})
	if err != nil {
		return err
	}
	if bw != nil {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}

	for i := range res.Counts {
		ps.counts[i] += res.Counts[i]
	}
	ps.checksum = res.Checksum
	ps.segments = res.Segments
	metrics.RecordSegments("sieve", int64(res.Segments))
	return nil
}

// callbackSink wraps the user callback; callbacks of a parallel run
// are serialized on the root facade's mutex.
func (ps *PrimeSieve) callbackSink() func(uint64) {
	if ps.parent == nil {
		return ps.sink
	}
	root := ps.root()
	return func(p uint64) {
		root.mu.Lock()
		ps.sink(p)
		root.mu.Unlock()
	}
}

// finishStatus forces the status to 100% at the end of a run; the
// per-segment spans overshoot the interval on partial segments, so
// this is just the final clamp plus newline-free terminal update.
func (ps *PrimeSieve) finishStatus() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	old := int(ps.status)
	ps.status = 100
	if ps.flags&PrintStatus != 0 && old < 100 {
		fmt.Fprintf(ps.statusOut, "\r%d%%", 100)
	}
}

// SieveInterval sieves [start, stop] with the current flags.
func (ps *PrimeSieve) SieveInterval(start, stop uint64) error {
	if err := ps.SetStart(start); err != nil {
		return err
	}
	if err := ps.SetStop(stop); err != nil {
		return err
	}
	return ps.Sieve()
}

// SieveIntervalFlags sieves [start, stop] with the given flags.
func (ps *PrimeSieve) SieveIntervalFlags(start, stop uint64, f Flag) error {
	if err := ps.SetFlags(f); err != nil {
		return err
	}
	return ps.SieveInterval(start, stop)
}

// Convenience counting methods. Each runs a full sieve.

func (ps *PrimeSieve) CountPrimes(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountPrimes); err != nil {
		return 0, err
	}
	return ps.counts[0], nil
}

func (ps *PrimeSieve) CountTwins(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountTwins); err != nil {
		return 0, err
	}
	return ps.counts[1], nil
}

func (ps *PrimeSieve) CountTriplets(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountTriplets); err != nil {
		return 0, err
	}
	return ps.counts[2], nil
}

func (ps *PrimeSieve) CountQuadruplets(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountQuadruplets); err != nil {
		return 0, err
	}
	return ps.counts[3], nil
}

func (ps *PrimeSieve) CountQuintuplets(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountQuintuplets); err != nil {
		return 0, err
	}
	return ps.counts[4], nil
}

func (ps *PrimeSieve) CountSextuplets(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountSextuplets); err != nil {
		return 0, err
	}
	return ps.counts[5], nil
}

func (ps *PrimeSieve) CountSeptuplets(start, stop uint64) (uint64, error) {
	if err := ps.SieveIntervalFlags(start, stop, CountSeptuplets); err != nil {
		return 0, err
	}
	return ps.counts[6], nil
}

// PrintPrimes writes each prime in [start, stop] on its own line.
func (ps *PrimeSieve) PrintPrimes(start, stop uint64) error {
	return ps.SieveIntervalFlags(start, stop, PrintPrimes)
}

// PrintKTuplets writes each k-tuplet in [start, stop] on its own
// line, k in [1, 7] (1 = primes, 2 = twins, ...).
func (ps *PrimeSieve) PrintKTuplets(start, stop uint64, k int) error {
	if k < 1 || k > 7 {
		return fmt.Errorf("%w: k-tuplet size %d", ErrInvalidFlags, k)
	}
	return ps.SieveIntervalFlags(start, stop, PrintPrimes<<(k-1))
}
