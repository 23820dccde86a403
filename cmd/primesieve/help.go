package main

const versionText = "primesieve 1.0"

const helpText = `Usage: primesieve [STOP|START STOP] [OPTION]...
Count and print the primes and prime k-tuplets (twins, triplets, ...,
septuplets) in an interval of 64-bit integers.

Numbers may be raw integers or arithmetic expressions, e.g. 1e12,
2^32, "10^9+7".

Options:
  -c[N], --count[=N]   Count primes and/or prime k-tuplets. N is a
                       string of digits, each digit k in 1..6 enables
                       counting k-tuplets (1 = primes, default).
  -d N,  --dist=N      Sieve the interval [START, START + N].
  -n,    --nthprime    Find the Nth prime: primesieve N [START] -n.
  -p[N], --print[=N]   Print primes (N = 1, default) or k-tuplets
                       (N in 2..6), one per line.
  -q,    --quiet       Quiet mode: print numbers only, no status.
  -s N,  --size=N      Segment size in KiB, 1 <= N <= 4096 (rounded
                       up to the next power of two).
  -t N,  --threads=N   Number of worker threads (default: one per
                       logical CPU).
         --no-status   Turn off the progress indicator.
         --time        Print the elapsed seconds.
  -h,    --help        Print this help menu.
  -v,    --version     Print version information.

Examples:
  primesieve 1e10                  count the primes below 10^10
  primesieve 1e9 -c123             also count twins and triplets
  primesieve 100 200 -p            print the primes in [100, 200]
  primesieve 1e12 -d1e6 -c2        count twins in [10^12, 10^12+10^6]
`
