package hamming

import (
	"context"
	"slices"
)

// IsHamming reports whether x factors completely over primes.
// primes must be ascending.
//
// Each step divides the current value by the first prime that divides it
// evenly. The test succeeds once the value is 1 or itself a member of primes,
// and fails as soon as no prime divides it.
func IsHamming(x int64, primes []int64) bool {
	if x < 1 {
		return false
	}

	for x != 1 {
		if _, found := slices.BinarySearch(primes, x); found {
			return true
		}

		reduced := x
		for _, p := range primes {
			if p >= 2 && x%p == 0 {
				reduced = x / p
				break
			}
		}
		if reduced == x {
			return false
		}
		x = reduced
	}

	return true
}

// CountNaive counts generalized Hamming numbers by testing every integer in
// [2, threshold] with IsHamming and adding one for the unit value.
// It runs in O(threshold * len(primes)) and is meant for small inputs only.
func CountNaive(primes []int64, threshold int64) int64 {
	count, _ := CountNaiveContext(context.Background(), primes, threshold)
	return count
}

// CountNaiveContext is CountNaive with cancellation.
func CountNaiveContext(ctx context.Context, primes []int64, threshold int64) (int64, error) {
	if threshold < 1 {
		return 0, nil
	}

	count := int64(1)
	for x := int64(2); x <= threshold; x++ {
		if x%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return count, err
			}
		}
		if IsHamming(x, primes) {
			count++
		}
		if x == threshold {
			break
		}
	}
	return count, nil
}
