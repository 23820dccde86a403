package bitmap

import "testing"

// TestNewOdd verifies the starting state: odd bits set, even bits
// clear, and the allocation formula max/64+1 words.
func TestNewOdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		max       uint64
		wantWords int
	}{
		{"tiny", 0, 1},
		{"one word boundary", 63, 1},
		{"just past a word", 64, 2},
		{"several words", 1000, 16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewOdd(tt.max)
			if got := len(b.data); got != tt.wantWords {
				t.Fatalf("NewOdd(%d) words = %d, want %d", tt.max, got, tt.wantWords)
			}
			for i := uint64(0); i <= tt.max; i++ {
				want := i%2 == 1
				if got := b.Has(i); got != want {
					t.Fatalf("NewOdd(%d).Has(%d) = %v, want %v", tt.max, i, got, want)
				}
			}
		})
	}
}

// TestClearAndHas verifies the basic bit semantics including the
// out-of-range no-op behavior.
func TestClearAndHas(t *testing.T) {
	t.Parallel()

	b := NewOdd(127)

	b.Clear(63)
	b.Clear(65)
	b.Clear(10000) // out of range, must not panic

	if b.Has(63) || b.Has(65) {
		t.Fatalf("cleared bits still set")
	}
	if !b.Has(61) || !b.Has(67) {
		t.Fatalf("neighboring bits were clobbered")
	}
	if b.Has(10000) {
		t.Fatalf("out-of-range Has must be false")
	}
}

// TestSievePrimes checks the tiny sieve against the known primes below
// 100 and a couple of composites that naive odd-only sieves get wrong.
func TestSievePrimes(t *testing.T) {
	t.Parallel()

	b := SievePrimes(100)

	primes := []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43,
		47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}
	isPrime := map[uint64]bool{}
	for _, p := range primes {
		isPrime[p] = true
	}

	for i := uint64(3); i <= 100; i += 2 {
		if got := b.Has(i); got != isPrime[i] {
			t.Fatalf("SievePrimes(100).Has(%d) = %v, want %v", i, got, isPrime[i])
		}
	}
	if b.Has(1) {
		t.Fatalf("1 must not be marked prime")
	}
	if b.Has(2) {
		t.Fatalf("2 is even and handled by the caller, bit must be clear")
	}
}

func BenchmarkSievePrimes(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SievePrimes(1 << 16)
	}
}
