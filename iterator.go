package primesieve

import (
	"math"
	"sort"
)

// Iterator lazily iterates over primes in both directions. Primes are
// produced in adaptively sized batches: small batches at first for
// cheap startup, larger ones once iteration shows it is going to be
// long, capped so a batch never exceeds 512 MB of primes.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	start        uint64
	primes       []uint64
	i            int
	first        bool
	adjustSkipTo bool
	count        int
}

// NewIterator returns an iterator positioned at start: the next
// NextPrime call returns the first prime >= start.
func NewIterator(start uint64) (*Iterator, error) {
	it := &Iterator{}
	if err := it.SkipTo(start); err != nil {
		return nil, err
	}
	return it, nil
}

// SkipTo repositions the iterator at start. When the current batch
// already contains start the position is found by binary search and
// no primes are regenerated.
func (it *Iterator) SkipTo(start uint64) error {
	if start > MaxStop {
		return ErrNumberTooLarge
	}
	it.first = true
	it.adjustSkipTo = false
	it.i = 0
	it.count = 0
	it.start = start

	if len(it.primes) > 0 &&
		it.primes[0] <= start &&
		it.primes[len(it.primes)-1] >= start {
		it.adjustSkipTo = true
		it.i = sort.Search(len(it.primes), func(k int) bool {
			return it.primes[k] >= start
		})
	}
	return nil
}

// NextPrime returns the next prime in increasing order. The first
// call after SkipTo(start) returns the first prime >= start.
func (it *Iterator) NextPrime() (uint64, error) {
	if it.first || it.i+1 >= len(it.primes) {
		if err := it.generateNextPrimes(); err != nil {
			return 0, err
		}
	} else {
		it.i++
	}
	return it.primes[it.i], nil
}

// PrevPrime returns the next prime in decreasing order. Below 2 it
// returns the sentinel 0.
func (it *Iterator) PrevPrime() (uint64, error) {
	if it.first || it.i == 0 {
		if err := it.generatePrevPrimes(); err != nil {
			return 0, err
		}
	} else {
		it.i--
	}
	return it.primes[it.i], nil
}

func (it *Iterator) generate(start, stop uint64) error {
	primes, err := Primes(start, stop)
	if err != nil {
		return err
	}
	it.primes = primes
	if len(it.primes) == 0 {
		// Sentinel so PrevPrime below 2 yields 0 and NextPrime can
		// advance past an empty stretch.
		it.primes = append(it.primes, 0)
	}
	return nil
}

func (it *Iterator) generateNextPrimes() error {
	if it.adjustSkipTo {
		it.adjustSkipTo = false
		if it.i > 0 && it.primes[it.i-1] >= it.start {
			it.i--
		}
	} else {
		start := it.start
		if !it.first {
			start = it.primes[len(it.primes)-1] + 1
		}
		interval := it.intervalSize(start)
		stop := uint64(MaxStop)
		if start < MaxStop-interval {
			stop = start + interval
		}
		if err := it.generate(start, stop); err != nil {
			return err
		}
		it.i = 0
	}
	it.first = false
	return nil
}

func (it *Iterator) generatePrevPrimes() error {
	if it.adjustSkipTo {
		it.adjustSkipTo = false
		if it.i > 0 && it.primes[it.i] > it.start {
			it.i--
		}
	} else {
		stop := it.start
		if !it.first {
			stop = 0
			if it.primes[0] > 1 {
				stop = it.primes[0] - 1
			}
		}
		interval := it.intervalSize(stop)
		start := uint64(0)
		if stop > interval {
			start = stop - interval
		}
		if err := it.generate(start, stop); err != nil {
			return err
		}
		it.i = len(it.primes) - 1
	}
	it.first = false
	return nil
}

// intervalSize balances the per-call amortized cost against memory: a
// batch holds at least sqrt(n)/(ln(sqrt(n))-1) primes (enough that
// regenerating sieving primes does not dominate), at least 32 KiB
// worth for the first ten batches and 4 MiB after, and at most 512 MB.
func (it *Iterator) intervalSize(n uint64) uint64 {
	it.count++
	const (
		kilobyte = 1 << 10
		megabyte = 1 << 20
	)

	x := math.Max(float64(n), 10)
	sqrtx := math.Sqrt(x)
	sqrtxPrimes := uint64(sqrtx / (math.Log(sqrtx) - 1))

	var primes uint64 = (kilobyte * 32) / 8
	if it.count > 10 {
		primes = (megabyte * 4) / 8
	}
	if primes < sqrtxPrimes {
		primes = sqrtxPrimes
	}
	if max := uint64(megabyte*512) / 8; primes > max {
		primes = max
	}

	return uint64(float64(primes) * math.Log(x))
}
