package primesieve

import "testing"

// TestIteratorNextPrime walks forward from 1000 and back once,
// covering the adaptive batch boundary logic.
func TestIteratorNextPrime(t *testing.T) {
	t.Parallel()

	it, err := NewIterator(1000)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint64{1009, 1013, 1019, 1021, 1031}
	for i, w := range want {
		p, err := it.NextPrime()
		if err != nil {
			t.Fatalf("NextPrime #%d: %v", i, err)
		}
		if p != w {
			t.Fatalf("NextPrime #%d = %d, want %d", i, p, w)
		}
	}

	p, err := it.PrevPrime()
	if err != nil {
		t.Fatalf("PrevPrime: %v", err)
	}
	if p != 1021 {
		t.Fatalf("PrevPrime after 1031 = %d, want 1021", p)
	}
}

// TestIteratorFromZero checks the very start of the prime sequence.
func TestIteratorFromZero(t *testing.T) {
	t.Parallel()

	it, err := NewIterator(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{2, 3, 5, 7, 11, 13}
	for _, w := range want {
		p, err := it.NextPrime()
		if err != nil {
			t.Fatal(err)
		}
		if p != w {
			t.Fatalf("NextPrime = %d, want %d", p, w)
		}
	}
}

// TestIteratorPrevBelowTwo: iterating downward past the first prime
// yields the 0 sentinel, and NextPrime recovers.
func TestIteratorPrevBelowTwo(t *testing.T) {
	t.Parallel()

	it, err := NewIterator(5)
	if err != nil {
		t.Fatal(err)
	}

	for _, w := range []uint64{5, 3, 2, 0, 0} {
		p, err := it.PrevPrime()
		if err != nil {
			t.Fatalf("PrevPrime: %v", err)
		}
		if p != w {
			t.Fatalf("PrevPrime = %d, want %d", p, w)
		}
	}

	p, err := it.NextPrime()
	if err != nil {
		t.Fatal(err)
	}
	if p != 2 {
		t.Fatalf("NextPrime after sentinel = %d, want 2", p)
	}
}

// TestIteratorSkipTo: repositioning inside the cached batch reuses it
// via binary search; the next prime is the first >= start.
func TestIteratorSkipTo(t *testing.T) {
	t.Parallel()

	it, err := NewIterator(1000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := it.NextPrime(); err != nil {
		t.Fatal(err)
	}

	// 1013 is prime and inside the cached batch: SkipTo must land
	// exactly on it.
	if err := it.SkipTo(1013); err != nil {
		t.Fatal(err)
	}
	p, err := it.NextPrime()
	if err != nil {
		t.Fatal(err)
	}
	if p != 1013 {
		t.Fatalf("NextPrime after SkipTo(1013) = %d, want 1013", p)
	}

	// A composite start position yields the next prime above it.
	if err := it.SkipTo(1014); err != nil {
		t.Fatal(err)
	}
	p, err = it.NextPrime()
	if err != nil {
		t.Fatal(err)
	}
	if p != 1019 {
		t.Fatalf("NextPrime after SkipTo(1014) = %d, want 1019", p)
	}
}

// TestIteratorOverflow: positions beyond the engine ceiling fail.
func TestIteratorOverflow(t *testing.T) {
	t.Parallel()

	if _, err := NewIterator(MaxStop + 1); err == nil {
		t.Fatal("NewIterator(MaxStop+1) must fail")
	}

	it, err := NewIterator(10)
	if err != nil {
		t.Fatal(err)
	}
	if err := it.SkipTo(MaxStop + 1); err == nil {
		t.Fatal("SkipTo(MaxStop+1) must fail")
	}
}

// TestNthPrime exercises the iterator-backed nth prime helper.
func TestNthPrime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n     uint64
		start uint64
		want  uint64
	}{
		{1, 0, 2},
		{25, 0, 97},
		{1, 1000, 1009},
		{5, 1000, 1031},
	}
	for _, tt := range tests {
		got, err := NthPrime(tt.n, tt.start)
		if err != nil {
			t.Fatalf("NthPrime(%d, %d): %v", tt.n, tt.start, err)
		}
		if got != tt.want {
			t.Fatalf("NthPrime(%d, %d) = %d, want %d", tt.n, tt.start, got, tt.want)
		}
	}

	if _, err := NthPrime(0, 0); err == nil {
		t.Fatal("NthPrime(0, ...) must fail")
	}
}
