package bench

import (
	"testing"

	"primesieve"
)

// BenchmarkEndToEnd exercises the whole stack through the public
// facade: generator recursion, all three cross-off engines, pre-sieve
// tiling, and the counting consumer.
//
// The goal is to approximate real-world throughput without involving
// printing or callbacks.
// Run with:
//
//	go test -run=^$ -bench ^BenchmarkEndToEnd$ -cpuprofile cpu.out -memprofile mem.out -count=1
func BenchmarkEndToEnd(b *testing.B) {
	benchmarks := []struct {
		name        string
		start, stop uint64
		sieveKiB    int
	}{
		{"1e7_default", 0, 10000000, 0},
		{"1e8_default", 0, 100000000, 0},
		{"1e8_small_segments", 0, 100000000, 8},
		{"high_interval", 1000000000000, 1000000000000 + 10000000, 0},
	}

	for _, bm := range benchmarks {
		bm := bm
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ps := primesieve.New()
				if bm.sieveKiB > 0 {
					ps.SetSieveSize(bm.sieveKiB)
				}
				n, err := ps.CountPrimes(bm.start, bm.stop)
				if err != nil {
					b.Fatal(err)
				}
				if n == 0 {
					b.Fatal("zero primes counted")
				}
			}
			b.SetBytes(int64(bm.stop - bm.start))
		})
	}
}

// BenchmarkParallel measures the errgroup-based interval splitting.
func BenchmarkParallel(b *testing.B) {
	threadNames := map[int]string{1: "t1", 2: "t2", 4: "t4"}
	for _, threads := range []int{1, 2, 4} {
		threads := threads
		b.Run(threadNames[threads], func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ps := primesieve.NewParallel()
				ps.SetThreads(threads)
				if _, err := ps.CountPrimes(0, 100000000); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
