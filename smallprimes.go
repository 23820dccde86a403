package primesieve

import "fmt"

// smallPrime covers the primes below 7 and the k-tuplets that
// straddle 5/7. These never appear on the 30-wheel, so the facade
// handles them before the engine runs instead of special-casing the
// wheel machinery.
type smallPrime struct {
	min   uint64
	max   uint64
	index int
	str   string
}

var smallPrimes = [8]smallPrime{
	{2, 2, 0, "2"},
	{3, 3, 0, "3"},
	{5, 5, 0, "5"},
	{3, 5, 1, "(3, 5)"},
	{5, 7, 1, "(5, 7)"},
	{5, 11, 2, "(5, 7, 11)"},
	{5, 13, 3, "(5, 7, 11, 13)"},
	{5, 17, 4, "(5, 7, 11, 13, 17)"},
}

// doSmallPrime counts/prints/calls back one table entry when its whole
// pattern lies within [start, stop]. The root mutex serializes the
// user callback and counter updates across parallel workers.
func (ps *PrimeSieve) doSmallPrime(sp *smallPrime) {
	if ps.start > sp.min || sp.max > ps.stop {
		return
	}

	root := ps.root()
	root.mu.Lock()
	defer root.mu.Unlock()

	if sp.index == 0 && ps.isCallback() {
		ps.sink(sp.min)
	}
	if ps.flags&(CountPrimes<<sp.index) != 0 {
		ps.counts[sp.index]++
	}
	if ps.flags&(PrintPrimes<<sp.index) != 0 {
		fmt.Fprintln(ps.out, sp.str)
	}
}
