package sieve

import (
	"math/bits"

	"primesieve/internal/bitmap"
)

// generatorSegBytes is the segment size of the sieving-prime
// generator. Its interval only reaches sqrt(stop), so a small,
// L1-resident buffer is always the right choice.
const generatorSegBytes = 32 << 10

// generatorPreSieve is the generator's own pre-sieve limit. Kept at
// the minimum: the generator's interval starts above the target's
// pre-sieve limit anyway, so a large pattern buys nothing.
const generatorPreSieve = 13

// seedSievingPrimes produces all sieving primes the target driver
// needs, i.e. the primes in (preSieveLimit, sqrt(stop)], and pushes
// them into dst in increasing order.
//
// This is the layered recursion of the engine: a second segmented
// driver sieves [preSieveLimit+1, sqrt(stop)] and streams its output
// into dst; that driver is itself seeded by a plain bit sieve up to
// stop^(1/4), which is small enough to not need segmenting.
func seedSievingPrimes(dst *eratosthenes) error {
	if dst.sqrtStop <= uint64(dst.pre.limit) {
		return nil
	}

	gen, err := newEratosthenes(
		uint64(dst.pre.limit)+1,
		dst.sqrtStop,
		generatorSegBytes,
		generatorPreSieve,
		func(low uint64, sieve []byte) {
			forEachPrime(low, sieve, dst.addSievingPrime)
		},
	)
	if err != nil {
		return err
	}

	if n := gen.sqrtStop; n > uint64(gen.pre.limit) {
		tiny := bitmap.SievePrimes(n)
		for i := uint64(gen.pre.limit) + 1; i <= n; i++ {
			if tiny.Has(i) {
				gen.addSievingPrime(i)
			}
		}
	}
	gen.finish()
	return nil
}

// forEachPrime calls fn for every set bit of a sieved segment, in
// increasing value order.
func forEachPrime(low uint64, sieve []byte, fn func(uint64)) {
	for i, b := range sieve {
		base := low + uint64(i)*30
		for b != 0 {
			bit := bits.TrailingZeros8(b)
			b &= b - 1
			fn(base + bitValues[bit])
		}
	}
}
