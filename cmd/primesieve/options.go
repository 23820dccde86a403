// Command primesieve is the console front end of the sieve library:
// it counts or prints primes and prime k-tuplets in an interval given
// on the command line.
//
// Numeric values are either raw integers or arithmetic expressions
// ("1e12", "2^32-1"); see internal/calculator.
package main

import (
	"fmt"
	"strings"

	"primesieve"
	"primesieve/internal/calculator"
)

// optionID enumerates the known command-line options.
type optionID int

const (
	optionCount optionID = iota
	optionHelp
	optionNthPrime
	optionNoStatus
	optionNumber
	optionDistance
	optionPrint
	optionQuiet
	optionSize
	optionThreads
	optionTime
	optionVersion
)

var optionMap = map[string]optionID{
	"-c":          optionCount,
	"--count":     optionCount,
	"-h":          optionHelp,
	"--help":      optionHelp,
	"-n":          optionNthPrime,
	"--nthprime":  optionNthPrime,
	"--no-status": optionNoStatus,
	"--number":    optionNumber,
	"-d":          optionDistance,
	"--dist":      optionDistance,
	"-p":          optionPrint,
	"--print":     optionPrint,
	"-q":          optionQuiet,
	"--quiet":     optionQuiet,
	"-s":          optionSize,
	"--size":      optionSize,
	"-t":          optionThreads,
	"--threads":   optionThreads,
	"--time":      optionTime,
	"-v":          optionVersion,
	"--version":   optionVersion,
}

// cmdOptions is the parsed command line.
type cmdOptions struct {
	numbers   []uint64
	flags     primesieve.Flag
	sieveSize int
	threads   int
	nthPrime  bool
	quiet     bool
	status    bool
	time      bool
	help      bool
	version   bool
}

// option is one raw command-line argument split into name and value,
// e.g. "--threads=4" -> {"--threads", "4"}.
type option struct {
	argv  string
	str   string
	value string
}

func (o option) getValue() (uint64, error) {
	if o.value == "" {
		return 0, fmt.Errorf("missing value for option %s", o.argv)
	}
	v, err := calculator.Eval(o.value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for option %s: %v", o.argv, err)
	}
	return v, nil
}

// makeOption splits argv at the first '=' or digit. A bare value
// ("100", "1e10") becomes the pseudo option --number.
func makeOption(argv string) (option, error) {
	opt := option{argv: argv}

	delim := strings.IndexAny(argv, "=0123456789")
	if delim < 0 {
		opt.str = argv
	} else {
		opt.str = argv[:delim]
		v := argv[delim:]
		if v != "" && v[0] == '=' {
			v = v[1:]
		}
		opt.value = v
	}

	if opt.str == "" && opt.value != "" {
		opt.str = "--number"
	}
	if _, ok := optionMap[opt.str]; !ok {
		return opt, fmt.Errorf("unknown option %s", argv)
	}
	return opt, nil
}

// optionCountFlags decodes the -c digit string: each decimal digit k
// in 1..6 enables counting of k-tuplets (1 = primes, 2 = twins, ...).
func (opts *cmdOptions) optionCountFlags(opt option) error {
	if opt.value == "" {
		opt.value = "1"
	}
	n, err := opt.getValue()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("invalid option %s", opt.argv)
	}
	for ; n > 0; n /= 10 {
		switch n % 10 {
		case 1:
			opts.flags |= primesieve.CountPrimes
		case 2:
			opts.flags |= primesieve.CountTwins
		case 3:
			opts.flags |= primesieve.CountTriplets
		case 4:
			opts.flags |= primesieve.CountQuadruplets
		case 5:
			opts.flags |= primesieve.CountQuintuplets
		case 6:
			opts.flags |= primesieve.CountSextuplets
		default:
			return fmt.Errorf("invalid option %s", opt.argv)
		}
	}
	return nil
}

// optionPrintFlags decodes -p[k]: print k-tuplets, default primes.
// Printing implies quiet (no label/status chatter on stdout).
func (opts *cmdOptions) optionPrintFlags(opt option) error {
	opts.quiet = true
	if opt.value == "" {
		opt.value = "1"
	}
	n, err := opt.getValue()
	if err != nil {
		return err
	}
	switch n {
	case 1:
		opts.flags |= primesieve.PrintPrimes
	case 2:
		opts.flags |= primesieve.PrintTwins
	case 3:
		opts.flags |= primesieve.PrintTriplets
	case 4:
		opts.flags |= primesieve.PrintQuadruplets
	case 5:
		opts.flags |= primesieve.PrintQuintuplets
	case 6:
		opts.flags |= primesieve.PrintSextuplets
	default:
		return fmt.Errorf("invalid option %s", opt.argv)
	}
	return nil
}

// parseOptions turns the raw arguments into a cmdOptions. The
// returned error makes the process exit non-zero.
func parseOptions(args []string) (*cmdOptions, error) {
	opts := &cmdOptions{status: true}

	for _, argv := range args {
		opt, err := makeOption(argv)
		if err != nil {
			return nil, err
		}

		switch optionMap[opt.str] {
		case optionCount:
			if err := opts.optionCountFlags(opt); err != nil {
				return nil, err
			}
		case optionPrint:
			if err := opts.optionPrintFlags(opt); err != nil {
				return nil, err
			}
		case optionSize:
			v, err := opt.getValue()
			if err != nil {
				return nil, err
			}
			opts.sieveSize = int(v)
		case optionThreads:
			v, err := opt.getValue()
			if err != nil {
				return nil, err
			}
			opts.threads = int(v)
		case optionQuiet:
			opts.quiet = true
		case optionNthPrime:
			opts.nthPrime = true
		case optionNoStatus:
			opts.status = false
		case optionTime:
			opts.time = true
		case optionNumber:
			v, err := opt.getValue()
			if err != nil {
				return nil, err
			}
			opts.numbers = append(opts.numbers, v)
		case optionDistance:
			v, err := opt.getValue()
			if err != nil {
				return nil, err
			}
			if len(opts.numbers) == 0 {
				return nil, fmt.Errorf("option %s requires a START number first", opt.argv)
			}
			opts.numbers = append(opts.numbers, opts.numbers[0]+v)
		case optionVersion:
			opts.version = true
		case optionHelp:
			opts.help = true
		}
	}

	if opts.help || opts.version {
		return opts, nil
	}

	if len(opts.numbers) == 0 {
		return nil, fmt.Errorf("missing STOP number")
	}
	if len(opts.numbers) > 2 {
		return nil, fmt.Errorf("too many numbers, expected STOP or START STOP")
	}

	// Quiet runs never print status; interactive runs report timing.
	if opts.quiet {
		opts.status = false
	} else {
		opts.time = true
	}

	// Counting primes is the default action.
	if opts.flags == 0 && !opts.nthPrime {
		opts.flags = primesieve.CountPrimes
	}
	return opts, nil
}
