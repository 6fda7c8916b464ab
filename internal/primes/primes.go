package primes

import "fmt"

// Basis selects how a Hamming "type" maps to a set of primes.
type Basis string

const (
	// BasisBound uses every prime less than or equal to the type.
	BasisBound Basis = "bound"
	// BasisFirstN uses the first type primes.
	BasisFirstN Basis = "first-n"
)

// ParseBasis converts a user supplied name into a Basis.
// An empty name selects BasisBound.
func ParseBasis(name string) (Basis, error) {
	switch Basis(name) {
	case "", BasisBound:
		return BasisBound, nil
	case BasisFirstN:
		return BasisFirstN, nil
	default:
		return "", fmt.Errorf("unknown prime basis %q (want %q or %q)", name, BasisBound, BasisFirstN)
	}
}

// IsPrime reports whether n is prime using trial division by every
// integer from 2 up to and including the integer square root of n.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d <= n/d; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// List returns all primes in [2, bound] in ascending order.
// The result is empty (never nil) when bound < 2.
func List(bound int64) []int64 {
	primes := []int64{}
	for n := int64(2); n <= bound; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// FirstN returns the first n primes in ascending order.
func FirstN(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	primes := make([]int64, 0, n)
	for candidate := int64(2); len(primes) < n; candidate++ {
		if IsPrime(candidate) {
			primes = append(primes, candidate)
		}
	}
	return primes
}

// ForType returns the prime set a Hamming number of the given type may use.
func ForType(typ int64, basis Basis) []int64 {
	if basis == BasisFirstN {
		return FirstN(int(typ))
	}
	return List(typ)
}
