package sieve

// eratSmall crosses off the multiples of small sieving primes, the
// ones whose full wheel turn (p bytes) is much shorter than a segment
// and which therefore hit every segment many times.
//
// This is the hottest loop of the whole engine. For each prime the
// segment is swept one full wheel turn at a time: eight cross-offs per
// iteration, one per residue, each at a fixed byte offset with a fixed
// bit mask. A single generic wheel-step loop costs more than twice the
// throughput here.
type eratSmall struct {
	limit  uint64
	primes []wheelPrime
}

func newEratSmall(limit uint64) *eratSmall {
	return &eratSmall{limit: limit}
}

// store adds a sieving prime. low is the driver's current segment
// base; primes whose first multiple exceeds stop are discarded.
func (e *eratSmall) store(prime, low, stop uint64) {
	if wp, ok := newWheelPrime(prime, low, stop); ok {
		e.primes = append(e.primes, wp)
	}
}

// crossOff clears the multiples of all stored primes within the
// current segment and persists each prime's residual state (offset
// into the next segment, next wheel index).
func (e *eratSmall) crossOff(sieve []byte) {
	for idx := range e.primes {
		crossOffSmall(sieve, &e.primes[idx])
	}
}

func crossOffSmall(sieve []byte, wp *wheelPrime) {
	end := len(sieve)
	i := int(wp.multipleIndex)
	wi := wp.wheelIndex
	p := int(wp.sievingPrime)
	base := (wi / 8) * 8
	pv := p*30 + int(coprimes[wi/8]) // byte stride of one full wheel turn

	// Lead-in: single wheel steps until the cycle reaches its first
	// residue, so the unrolled turns below have a fixed entry point.
	for wi != base {
		if i >= end {
			wp.multipleIndex = uint32(i - end)
			wp.wheelIndex = wi
			return
		}
		el := &wheel30[wi]
		sieve[i] &^= el.unsetBit
		i += int(el.nextMultipleFactor)*p + int(el.correct)
		wi = el.next
	}

	// Per-residue offsets and masks within one turn. off[7]+d7 == pv
	// with d7 >= 1, so every offset stays strictly inside [i, i+pv).
	var off [8]int
	var mask [8]uint8
	o := 0
	for k := 0; k < 8; k++ {
		el := &wheel30[base+uint8(k)]
		off[k] = o
		mask[k] = el.unsetBit
		o += int(el.nextMultipleFactor)*p + int(el.correct)
	}

	for i+pv <= end {
		sieve[i+off[0]] &^= mask[0]
		sieve[i+off[1]] &^= mask[1]
		sieve[i+off[2]] &^= mask[2]
		sieve[i+off[3]] &^= mask[3]
		sieve[i+off[4]] &^= mask[4]
		sieve[i+off[5]] &^= mask[5]
		sieve[i+off[6]] &^= mask[6]
		sieve[i+off[7]] &^= mask[7]
		i += pv
	}

	// Tail: at most one partial turn remains.
	for k := 0; k < 8; k++ {
		if i >= end {
			wp.multipleIndex = uint32(i - end)
			wp.wheelIndex = base + uint8(k)
			return
		}
		el := &wheel30[base+uint8(k)]
		sieve[i] &^= el.unsetBit
		i += int(el.nextMultipleFactor)*p + int(el.correct)
	}
	wp.multipleIndex = uint32(i - end)
	wp.wheelIndex = base
}
