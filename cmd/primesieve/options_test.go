package main

import (
	"testing"

	"primesieve"
)

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		wantNumbers []uint64
		wantFlags   primesieve.Flag
		check       func(t *testing.T, opts *cmdOptions)
	}{
		{
			name:        "single stop number",
			args:        []string{"100"},
			wantNumbers: []uint64{100},
			wantFlags:   primesieve.CountPrimes,
		},
		{
			name:        "start and stop",
			args:        []string{"100", "200"},
			wantNumbers: []uint64{100, 200},
			wantFlags:   primesieve.CountPrimes,
		},
		{
			name:        "expression value",
			args:        []string{"1e4"},
			wantNumbers: []uint64{10000},
			wantFlags:   primesieve.CountPrimes,
		},
		{
			name:        "power expression",
			args:        []string{"2^10"},
			wantNumbers: []uint64{1024},
			wantFlags:   primesieve.CountPrimes,
		},
		{
			name:        "count digits",
			args:        []string{"1000", "-c12"},
			wantNumbers: []uint64{1000},
			wantFlags:   primesieve.CountPrimes | primesieve.CountTwins,
		},
		{
			name:        "count all tuplet sizes",
			args:        []string{"1000", "--count=123456"},
			wantNumbers: []uint64{1000},
			wantFlags: primesieve.CountPrimes | primesieve.CountTwins |
				primesieve.CountTriplets | primesieve.CountQuadruplets |
				primesieve.CountQuintuplets | primesieve.CountSextuplets,
		},
		{
			name:        "print default is primes and implies quiet",
			args:        []string{"50", "-p"},
			wantNumbers: []uint64{50},
			wantFlags:   primesieve.PrintPrimes,
			check: func(t *testing.T, opts *cmdOptions) {
				if !opts.quiet {
					t.Fatal("-p must imply quiet")
				}
				if opts.status {
					t.Fatal("quiet must disable status")
				}
			},
		},
		{
			name:        "print twins",
			args:        []string{"100", "-p2"},
			wantNumbers: []uint64{100},
			wantFlags:   primesieve.PrintTwins,
		},
		{
			name:        "distance",
			args:        []string{"1000", "-d100"},
			wantNumbers: []uint64{1000, 1100},
			wantFlags:   primesieve.CountPrimes,
		},
		{
			name:        "size and threads",
			args:        []string{"1000", "-s64", "--threads=3"},
			wantNumbers: []uint64{1000},
			wantFlags:   primesieve.CountPrimes,
			check: func(t *testing.T, opts *cmdOptions) {
				if opts.sieveSize != 64 {
					t.Fatalf("sieveSize = %d, want 64", opts.sieveSize)
				}
				if opts.threads != 3 {
					t.Fatalf("threads = %d, want 3", opts.threads)
				}
			},
		},
		{
			name:        "nthprime",
			args:        []string{"100", "-n"},
			wantNumbers: []uint64{100},
			check: func(t *testing.T, opts *cmdOptions) {
				if !opts.nthPrime {
					t.Fatal("nthPrime not set")
				}
			},
		},
		{
			name:        "no-status and time",
			args:        []string{"100", "--no-status", "--time"},
			wantNumbers: []uint64{100},
			wantFlags:   primesieve.CountPrimes,
			check: func(t *testing.T, opts *cmdOptions) {
				if opts.status {
					t.Fatal("--no-status ignored")
				}
				if !opts.time {
					t.Fatal("--time ignored")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := parseOptions(tt.args)
			if err != nil {
				t.Fatalf("parseOptions(%v): %v", tt.args, err)
			}
			if len(opts.numbers) != len(tt.wantNumbers) {
				t.Fatalf("numbers = %v, want %v", opts.numbers, tt.wantNumbers)
			}
			for i := range tt.wantNumbers {
				if opts.numbers[i] != tt.wantNumbers[i] {
					t.Fatalf("numbers = %v, want %v", opts.numbers, tt.wantNumbers)
				}
			}
			if tt.wantFlags != 0 && opts.flags != tt.wantFlags {
				t.Fatalf("flags = %#x, want %#x", opts.flags, tt.wantFlags)
			}
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestParseOptionsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no numbers", nil},
		{"unknown option", []string{"100", "--bogus"}},
		{"unknown short option", []string{"100", "-x"}},
		{"invalid count digit", []string{"100", "-c7"}},
		{"invalid count digit zero", []string{"100", "-c0"}},
		{"invalid print value", []string{"100", "-p9"}},
		{"missing size value", []string{"100", "--size"}},
		{"invalid expression", []string{"1e"}},
		{"distance without start", []string{"-d100"}},
		{"three numbers", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parseOptions(tt.args); err == nil {
				t.Fatalf("parseOptions(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseOptionsHelpVersion(t *testing.T) {
	t.Parallel()

	opts, err := parseOptions([]string{"--help"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.help {
		t.Fatal("help not set")
	}

	opts, err = parseOptions([]string{"-v"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.version {
		t.Fatal("version not set")
	}
}
