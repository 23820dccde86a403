package sieve

// eratMedium crosses off the multiples of medium sieving primes, which
// hit each segment only a handful of times. Records live in a linked
// list of buckets; each segment the list is drained record by record
// and surviving records are re-pushed into a fresh list, so a bucket
// returns to the free list as soon as its cursor passes the last
// record.
type eratMedium struct {
	limit uint64
	pool  bucketPool
	head  *bucket
}

func newEratMedium(limit uint64) *eratMedium {
	return &eratMedium{limit: limit}
}

func (e *eratMedium) store(prime, low, stop uint64) {
	if wp, ok := newWheelPrime(prime, low, stop); ok {
		pushPrime(&e.pool, &e.head, wp)
	}
}

// crossOff clears this segment's multiples of every stored prime.
// nextLow is the base value of the following segment; records whose
// next multiple provably exceeds stop are dropped instead of being
// re-pushed.
func (e *eratMedium) crossOff(sieve []byte, nextLow, stop uint64) {
	segLen := uint32(len(sieve))
	src := e.head
	e.head = nil

	for b := src; b != nil; {
		for k := 0; k < b.count; k++ {
			wp := b.primes[k]
			i := wp.multipleIndex
			wi := wp.wheelIndex
			p := wp.sievingPrime

			for i < segLen {
				el := &wheel30[wi]
				sieve[i] &^= el.unsetBit
				i += uint32(el.nextMultipleFactor)*p + uint32(el.correct)
				wi = el.next
			}

			wp.multipleIndex = i - segLen
			wp.wheelIndex = wi

			// The next multiple is at least nextLow + 30*index + 7;
			// once that exceeds stop the record is dead.
			if nextLow+30*uint64(wp.multipleIndex)+7 > stop {
				continue
			}
			pushPrime(&e.pool, &e.head, wp)
		}
		nb := b.next
		e.pool.put(b)
		b = nb
	}
}
