package sieve

import "primesieve/internal/pmath"

// preSieve replaces the cross-off work of the smallest wheel primes
// (7, 11, ..., limit) with a memcpy: it precomputes one period of
// their combined multiples pattern and tiles it into each segment as
// the segment's starting state.
//
// The pattern length in bytes is the product of the pre-sieved primes
// (1001 bytes for limit 13, about 7 MB for limit 23), which is the
// period of the combined pattern on the 30-wheel.
type preSieve struct {
	limit   int
	size    int
	primes  []uint64
	pattern []byte
}

// preSievePrimes are the wheel primes eligible for pre-sieving.
var preSievePrimes = [6]uint64{7, 11, 13, 17, 19, 23}

func newPreSieve(limit int) *preSieve {
	limit = pmath.InBetween(13, limit, 23)

	size := 1
	var primes []uint64
	for _, p := range preSievePrimes {
		if p <= uint64(limit) {
			primes = append(primes, p)
			size *= int(p)
		}
	}

	pattern := make([]byte, size)
	for i := range pattern {
		pattern[i] = 0xff
	}

	// Cross off every multiple of every pre-sieved prime over one full
	// period. The pattern also clears the primes themselves (p = p*1);
	// the driver restores their bits in the segments that contain them.
	hi := uint64(size)*30 + 1
	for _, p := range primes {
		for m := p; m <= hi; m += 2 * p {
			if bit := bitOfResidue[m%30]; bit >= 0 {
				pattern[(m-7)/30] &^= 1 << uint8(bit)
			}
		}
	}

	return &preSieve{limit: limit, size: size, primes: primes, pattern: pattern}
}

// copyInto tiles the pattern into the segment buffer, phase-aligned to
// the segment's absolute byte position. low must be a multiple of 30.
func (ps *preSieve) copyInto(sieve []byte, low uint64) {
	offset := int((low / 30) % uint64(ps.size))
	n := copy(sieve, ps.pattern[offset:])
	for n < len(sieve) {
		n += copy(sieve[n:], ps.pattern)
	}
}
