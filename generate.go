package primesieve

import "fmt"

// GeneratePrimes calls fn for every prime in [start, stop] in
// increasing order. The pre-sieve limit is lowered to 17 to cut
// initialization cost, mirroring the counting defaults being tuned
// for throughput instead.
func (ps *PrimeSieve) GeneratePrimes(start, stop uint64, fn func(uint64)) error {
	if fn == nil {
		return ErrNilCallback
	}
	ps.sink = fn
	if err := ps.SetFlags(Callback64Primes); err != nil {
		return err
	}
	ps.SetPreSieve(17)
	return ps.SieveInterval(start, stop)
}

// GeneratePrimes32 is the 32-bit variant of GeneratePrimes; stop must
// fit in a uint32.
func (ps *PrimeSieve) GeneratePrimes32(start, stop uint32, fn func(uint32)) error {
	if fn == nil {
		return ErrNilCallback
	}
	ps.sink = func(p uint64) { fn(uint32(p)) }
	if err := ps.SetFlags(Callback32Primes); err != nil {
		return err
	}
	ps.SetPreSieve(17)
	return ps.SieveInterval(uint64(start), uint64(stop))
}

// GeneratePrimesObj is the opaque-context variant: fn additionally
// receives obj on every call. Closures make this largely redundant in
// Go; it exists for parity with the value-only form.
func (ps *PrimeSieve) GeneratePrimesObj(start, stop uint64, fn func(uint64, any), obj any) error {
	if fn == nil {
		return ErrNilCallback
	}
	if obj == nil {
		return ErrNilCallback
	}
	ps.sink = func(p uint64) { fn(p, obj) }
	if err := ps.SetFlags(Callback64ObjPrimes); err != nil {
		return err
	}
	ps.SetPreSieve(17)
	return ps.SieveInterval(start, stop)
}

// GeneratePrimes32Obj is the 32-bit opaque-context variant.
func (ps *PrimeSieve) GeneratePrimes32Obj(start, stop uint32, fn func(uint32, any), obj any) error {
	if fn == nil || obj == nil {
		return ErrNilCallback
	}
	ps.sink = func(p uint64) { fn(uint32(p), obj) }
	if err := ps.SetFlags(Callback32ObjPrimes); err != nil {
		return err
	}
	ps.SetPreSieve(17)
	return ps.SieveInterval(uint64(start), uint64(stop))
}

// GeneratePrimes calls fn for every prime in [start, stop] in
// increasing order using a fresh sieve.
func GeneratePrimes(start, stop uint64, fn func(uint64)) error {
	return New().GeneratePrimes(start, stop, fn)
}

// Primes returns the primes in [start, stop] as a slice.
func Primes(start, stop uint64) ([]uint64, error) {
	var out []uint64
	err := GeneratePrimes(start, stop, func(p uint64) {
		out = append(out, p)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NthPrime returns the n-th prime at or above start (n >= 1).
func NthPrime(n uint64, start uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("nth prime: n must be >= 1")
	}
	it, err := NewIterator(start)
	if err != nil {
		return 0, err
	}
	var p uint64
	for ; n > 0; n-- {
		p, err = it.NextPrime()
		if err != nil {
			return 0, err
		}
	}
	return p, nil
}
