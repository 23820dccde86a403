package sieve

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"primesieve/internal/pmath"
)

// smallFactor scales the small/medium routing threshold: primes up to
// smallFactor/2 * sqrt(30 * segmentBytes) go to eratSmall.
const smallFactor = 3 // numerator of 1.5, applied as *3/2

// eratosthenes is the segment driver. It owns the sieve bitmap,
// advances the segment window across [start, stop], tiles the
// pre-sieve pattern, dispatches sieving primes to the three cross-off
// engines, and hands each finished bitmap to the consumer.
type eratosthenes struct {
	start, stop uint64
	sqrtStop    uint64

	segmentLow  uint64
	segmentHigh uint64
	sieve       []byte

	pre    *preSieve
	small  *eratSmall
	medium *eratMedium
	big    *eratBig

	smallLimit  uint64
	mediumLimit uint64

	consume  func(low uint64, sieve []byte)
	digest   *xxh3.Hasher
	segments int
}

// newEratosthenes creates a driver for [start, stop]. start must be
// >= 7 (the facade handles 2, 3 and 5 before the engine runs) and
// segBytes must be a power of two.
func newEratosthenes(start, stop uint64, segBytes, preLimit int, consume func(uint64, []byte)) (*eratosthenes, error) {
	if start < 7 {
		return nil, fmt.Errorf("sieve: start must be >= 7, got %d", start)
	}
	if stop < start {
		return nil, fmt.Errorf("sieve: stop (%d) < start (%d)", stop, start)
	}
	if !pmath.IsPowerOf2(uint64(segBytes)) {
		return nil, fmt.Errorf("sieve: segment size %d is not a power of two", segBytes)
	}

	low := 30 * ((start - 7) / 30)
	e := &eratosthenes{
		start:       start,
		stop:        stop,
		sqrtStop:    pmath.ISqrt(stop),
		segmentLow:  low,
		segmentHigh: low + 30*uint64(segBytes) + 1,
		sieve:       make([]byte, segBytes),
		pre:         newPreSieve(preLimit),
		consume:     consume,
		digest:      xxh3.New(),
	}

	e.smallLimit = pmath.ISqrt(uint64(segBytes)*30) * smallFactor / 2
	e.mediumLimit = uint64(segBytes) * 30
	e.small = newEratSmall(e.smallLimit)
	e.medium = newEratMedium(e.mediumLimit)
	e.big = newEratBig(e.mediumLimit, segBytes, e.sqrtStop)

	return e, nil
}

// addSievingPrime ingests the next sieving prime. Primes must arrive
// in increasing order; segments are sieved eagerly until the prime's
// square lies within the segment window, at which point all smaller
// candidates are fully determined. The routing of a prime to an engine
// is fixed for the rest of the run.
func (e *eratosthenes) addSievingPrime(p uint64) {
	for e.segmentHigh < p*p {
		e.sieveSegment()
	}
	switch {
	case p <= e.smallLimit:
		e.small.store(p, e.segmentLow, e.stop)
	case p <= e.mediumLimit:
		e.medium.store(p, e.segmentLow, e.stop)
	default:
		e.big.store(p, e.segmentLow, e.stop)
	}
}

// finish sieves the remaining segments up to stop.
func (e *eratosthenes) finish() {
	for e.segmentLow+7 <= e.stop {
		e.sieveSegment()
	}
}

func (e *eratosthenes) sieveSegment() {
	e.pre.copyInto(e.sieve, e.segmentLow)
	e.restorePreSievePrimes()
	e.maskOutsideRange()

	e.small.crossOff(e.sieve)
	nextLow := e.segmentLow + 30*uint64(len(e.sieve))
	e.medium.crossOff(e.sieve, nextLow, e.stop)
	e.big.crossOff(e.sieve)

	e.updateDigest()
	e.segments++
	e.consume(e.segmentLow, e.sieve)

	e.segmentLow = nextLow
	e.segmentHigh += 30 * uint64(len(e.sieve))
}

// restorePreSievePrimes re-sets the bits of the pre-sieved primes
// themselves: the tiled pattern clears p as a multiple of p, which is
// wrong only in the segments that contain p.
func (e *eratosthenes) restorePreSievePrimes() {
	if e.segmentLow > uint64(e.pre.limit) {
		return
	}
	for _, p := range e.pre.primes {
		if p >= e.segmentLow+7 && p <= e.segmentHigh {
			e.sieve[(p-e.segmentLow-7)/30] |= 1 << uint8(bitOfResidue[p%30])
		}
	}
}

// maskOutsideRange clears candidates below start in the first segment
// and above stop in the last segment, so the consumer sees exactly
// [start, stop].
func (e *eratosthenes) maskOutsideRange() {
	if e.segmentLow < e.start {
		for i := 0; i < len(e.sieve); i++ {
			base := e.segmentLow + uint64(i)*30
			if base+31 < e.start {
				e.sieve[i] = 0
				continue
			}
			for b := 0; b < 8; b++ {
				if base+bitValues[b] < e.start {
					e.sieve[i] &^= 1 << uint8(b)
				}
			}
			break
		}
	}
	if e.segmentHigh > e.stop {
		for i := len(e.sieve) - 1; i >= 0; i-- {
			base := e.segmentLow + uint64(i)*30
			if base+7 > e.stop {
				e.sieve[i] = 0
				continue
			}
			for b := 0; b < 8; b++ {
				if base+bitValues[b] > e.stop {
					e.sieve[i] &^= 1 << uint8(b)
				}
			}
			break
		}
	}
}

// updateDigest folds the segment into the running bitmap fingerprint.
// Only bytes that can hold values <= stop are hashed, so the digest of
// a run depends solely on [start, stop] and not on the segment size or
// pre-sieve setting.
func (e *eratosthenes) updateDigest() {
	n := len(e.sieve)
	if e.segmentHigh > e.stop {
		n = int((e.stop-e.segmentLow-7)/30) + 1
	}
	e.digest.Write(e.sieve[:n])
}
