package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"primesieve"
	"primesieve/internal/metrics"
	"primesieve/internal/metrics/datadog"
	"primesieve/internal/metrics/prompush"
)

// countLabels, indexed like counts[0..6].
var countLabels = [7]string{
	"Primes",
	"Twin primes",
	"Prime triplets",
	"Prime quadruplets",
	"Prime quintuplets",
	"Prime sextuplets",
	"Prime septuplets",
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fatalf("primesieve: %v\nTry 'primesieve --help' for more information.", err)
	}
	if opts.help {
		fmt.Print(helpText)
		return
	}
	if opts.version {
		fmt.Println(versionText)
		return
	}

	initMetrics()
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	if opts.nthPrime {
		runNthPrime(opts)
		return
	}
	runSieve(opts)
}

// runSieve counts and/or prints primes over the interval given by the
// positional numbers (STOP, or START STOP).
func runSieve(opts *cmdOptions) {
	start := uint64(0)
	stop := opts.numbers[0]
	if len(opts.numbers) == 2 {
		start = opts.numbers[0]
		stop = opts.numbers[1]
	}

	ps := primesieve.NewParallel()
	ps.SetThreads(pickThreads(opts.threads))
	if opts.sieveSize > 0 {
		ps.SetSieveSize(opts.sieveSize)
	}

	flags := opts.flags
	if opts.status && isatty.IsTerminal(os.Stdout.Fd()) {
		flags |= primesieve.CalculateStatus | primesieve.PrintStatus
	}
	if err := ps.SetFlags(flags); err != nil {
		fatalf("primesieve: %v", err)
	}

	if err := ps.SieveInterval(start, stop); err != nil {
		fatalf("primesieve: %v", err)
	}

	if flags&primesieve.PrintStatus != 0 {
		fmt.Println() // move off the "\rNN%" line
	}
	printCounts(ps, opts)
	if opts.time {
		fmt.Printf("Seconds: %.3f\n", ps.Seconds())
	}
}

// runNthPrime resolves "-n": numbers are N [START].
func runNthPrime(opts *cmdOptions) {
	n := opts.numbers[0]
	start := uint64(0)
	if len(opts.numbers) == 2 {
		start = opts.numbers[1]
	}

	p, err := primesieve.NthPrime(n, start)
	if err != nil {
		fatalf("primesieve: %v", err)
	}
	if opts.quiet {
		fmt.Println(p)
		return
	}
	printer().Printf("Nth prime: %d\n", p)
}

// printCounts writes one line per enabled counter: plain digits in
// quiet mode, grouped digits with labels otherwise.
func printCounts(ps *primesieve.ParallelSieve, opts *cmdOptions) {
	counts := [7]uint64{
		ps.PrimeCount(),
		ps.TwinCount(),
		ps.TripletCount(),
		ps.QuadrupletCount(),
		ps.QuintupletCount(),
		ps.SextupletCount(),
		ps.SeptupletCount(),
	}
	for i := 0; i < 7; i++ {
		if opts.flags&(primesieve.CountPrimes<<i) == 0 {
			continue
		}
		if opts.quiet {
			fmt.Println(counts[i])
			continue
		}
		printer().Printf("%s: %d\n", countLabels[i], counts[i])
	}
}

// printer returns a locale-aware printer so large counts come out
// with digit grouping ("50,847,534").
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// pickThreads resolves the worker count: flag, then environment, then
// one per logical CPU.
func pickThreads(flagThreads int) int {
	if flagThreads > 0 {
		return flagThreads
	}
	if s := os.Getenv("PRIMESIEVE_THREADS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// initMetrics installs an optional metrics backend selected via the
// environment (12-factor style): PRIMESIEVE_METRICS=pushgateway uses
// PUSHGATEWAY_URL, PRIMESIEVE_METRICS=dogstatsd uses DOGSTATSD_ADDR.
func initMetrics() {
	switch backend := os.Getenv("PRIMESIEVE_METRICS"); backend {
	case "pushgateway":
		url := os.Getenv("PUSHGATEWAY_URL")
		if url == "" {
			url = "http://localhost:9091"
		}
		b, err := prompush.NewBackend("primesieve", url)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "dogstatsd":
		addr := os.Getenv("DOGSTATSD_ADDR")
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: addr, Namespace: "primesieve."})
		if err != nil {
			log.Printf("metrics: failed to init dogstatsd backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backend)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
