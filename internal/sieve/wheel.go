// Package sieve implements a segmented sieve of Eratosthenes with
// modulo-30 wheel factorization.
//
// The integer line is packed 30 numbers per byte: the eight bits of a
// byte correspond to the residues 7, 11, 13, 17, 19, 23, 29 and 31
// modulo 30 (the residues coprime to 30, with 1 represented as 31 of
// the previous block). All other residues are divisible by 2, 3 or 5
// and are never stored. A set bit means the candidate is still
// possibly prime; cross-off clears bits.
//
// Sieving primes are processed by three engines specialized by prime
// size (eratSmall, eratMedium, eratBig); all three share the wheel
// state machine defined in this file. The sieving primes themselves
// are produced by a second, smaller instance of the same engine, which
// in turn is seeded by a plain bit sieve up to stop^(1/4).
package sieve

// bitValues maps a bit position to the value it represents within a
// byte's 30-number window: value = segmentLow + byteIndex*30 + bitValues[bit].
var bitValues = [8]uint64{7, 11, 13, 17, 19, 23, 29, 31}

// coprimes lists the residue classes coprime to 30 in cycling order.
// Class 1 materializes in a byte as the value 31 of the previous block.
var coprimes = [8]uint64{1, 7, 11, 13, 17, 19, 23, 29}

// bitOfResidue maps n%30 to its bit position, or -1 when n is on a
// spoke divisible by 2, 3 or 5.
var bitOfResidue [30]int8

// classOfResidue maps n%30 to its index in coprimes, or -1.
var classOfResidue [30]int8

// wheelInit tells how far a quotient must be advanced to reach the
// next residue coprime to 30, and which class that residue is.
var wheelInit [30]struct {
	add   uint8
	index uint8
}

// wheelElement describes one step of the 8-step wheel cycle for one
// combination of (prime class, multiple class). Stepping a sieving
// prime p = 30*sievingPrime + c consumes:
//
//	multipleIndex += nextMultipleFactor*sievingPrime + correct
//	wheelIndex     = next
//
// and clears unsetBit in the byte at the old multipleIndex. Eight
// consecutive steps advance the multiple by exactly 30*p, i.e. the
// byte index by exactly p.
type wheelElement struct {
	unsetBit           uint8
	nextMultipleFactor uint8
	correct            uint8
	next               uint8
}

// wheel30 holds the 8x8 wheel: index = primeClass*8 + multipleClass.
var wheel30 [64]wheelElement

// wheelPrime is the per-sieving-prime cross-off state. sievingPrime
// stores p/30; the residue class of p is recoverable from the wheel
// index block.
type wheelPrime struct {
	sievingPrime  uint32
	multipleIndex uint32
	wheelIndex    uint8
}

// byteIndexAbs returns the byte that holds the value m, counting bytes
// from value 0. Residue-1 values belong to the previous block (as 31),
// hence the floor-like shape; m == 1 maps to byte -1.
func byteIndexAbs(m uint64) int64 {
	return int64((m+23)/30) - 1
}

func init() {
	for i := range bitOfResidue {
		bitOfResidue[i] = -1
		classOfResidue[i] = -1
	}
	for b, v := range bitValues {
		bitOfResidue[v%30] = int8(b)
	}
	for ci, c := range coprimes {
		classOfResidue[c] = int8(ci)
	}

	for x := 0; x < 30; x++ {
		d := 0
		for classOfResidue[(x+d)%30] < 0 {
			d++
		}
		wheelInit[x].add = uint8(d)
		wheelInit[x].index = uint8(classOfResidue[(x+d)%30])
	}

	for ci, c := range coprimes {
		for qi, q := range coprimes {
			q2 := coprimes[(qi+1)%8]
			if qi == 7 {
				q2 += 30
			}
			m1 := c * q
			m2 := c * q2
			wheel30[ci*8+qi] = wheelElement{
				unsetBit:           uint8(1) << uint8(bitOfResidue[m1%30]),
				nextMultipleFactor: uint8(q2 - q),
				correct:            uint8(byteIndexAbs(m2) - byteIndexAbs(m1)),
				next:               uint8(ci*8 + (qi+1)%8),
			}
		}
	}
}

// newWheelPrime positions prime for its first cross-off at or after
// max(prime*prime, low+7), where low is the driver's current segment
// base. ok is false when that multiple exceeds stop, i.e. the prime
// never contributes to the remaining interval.
//
// The quotient q is advanced to the next residue coprime to 30, so the
// computed multiple is at most 6*prime beyond the minimum; this bound
// is what the facade's 10*(2^32-1) overflow margin pays for.
func newWheelPrime(prime, low, stop uint64) (wheelPrime, bool) {
	q := prime
	m := prime * prime
	if m < low+7 {
		q = (low + 7 + prime - 1) / prime
		q += uint64(wheelInit[q%30].add)
		m = prime * q
	}
	if m > stop {
		return wheelPrime{}, false
	}
	return wheelPrime{
		sievingPrime:  uint32(prime / 30),
		multipleIndex: uint32((m - low - 7) / 30),
		wheelIndex:    uint8(classOfResidue[prime%30])*8 + wheelInit[q%30].index,
	}, true
}
