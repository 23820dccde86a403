package sieve

import "primesieve/internal/pmath"

// eratBig crosses off the multiples of large sieving primes, which hit
// at most one multiple per segment and usually none. Records are kept
// in a ring of bucket lists indexed by the segment their next multiple
// falls into, so a prime is only ever touched in segments where it
// actually clears a bit: amortized O(1) work per prime per multiple
// regardless of segment size.
type eratBig struct {
	limit   uint64
	log2Seg uint
	segMask uint32
	lists   []*bucket
	cur     int
	pool    bucketPool
}

// newEratBig sizes the ring so that one wheel step (at most
// 6*maxPrime/30 + 6 bytes) plus one segment of slack never wraps past
// the current position. segBytes must be a power of two.
func newEratBig(limit uint64, segBytes int, maxPrime uint64) *eratBig {
	maxDelta := (maxPrime/30)*6 + 6
	n := pmath.NextPowerOf2(pmath.CeilDiv(maxDelta, uint64(segBytes)) + 2)
	return &eratBig{
		limit:   limit,
		log2Seg: uint(pmath.ILog2(uint64(segBytes))),
		segMask: uint32(segBytes - 1),
		lists:   make([]*bucket, n),
	}
}

func (e *eratBig) store(prime, low, stop uint64) {
	if wp, ok := newWheelPrime(prime, low, stop); ok {
		e.push(wp)
	}
}

// push files a record under the list of the segment that contains its
// next multiple. multipleIndex is relative to the current segment on
// entry and relative to the target segment in storage.
func (e *eratBig) push(wp wheelPrime) {
	segs := int(wp.multipleIndex >> e.log2Seg)
	idx := (e.cur + segs) & (len(e.lists) - 1)
	wp.multipleIndex &= e.segMask
	pushPrime(&e.pool, &e.lists[idx], wp)
}

// crossOff processes exactly the records whose multiple falls in the
// current segment: clear one bit, advance one wheel step, refile.
func (e *eratBig) crossOff(sieve []byte) {
	idx := e.cur
	b := e.lists[idx]
	e.lists[idx] = nil

	for b != nil {
		for k := 0; k < b.count; k++ {
			wp := b.primes[k]
			el := &wheel30[wp.wheelIndex]
			sieve[wp.multipleIndex] &^= el.unsetBit
			wp.multipleIndex += uint32(el.nextMultipleFactor)*wp.sievingPrime + uint32(el.correct)
			wp.wheelIndex = el.next
			e.push(wp)
		}
		nb := b.next
		e.pool.put(b)
		b = nb
	}
	e.cur = (e.cur + 1) & (len(e.lists) - 1)
}
