package hamming

import (
	"context"
	"fmt"

	"hamming-numbers/internal/errors"
	"hamming-numbers/internal/primes"
)

// Strategy names a counting algorithm.
type Strategy string

const (
	// StrategyEnumeration walks the tree of non-decreasing prime products.
	StrategyEnumeration Strategy = "enumeration"
	// StrategyNaive tests every integer up to the threshold.
	StrategyNaive Strategy = "naive"
)

// ParseStrategy converts a user supplied name into a Strategy.
// An empty name selects StrategyEnumeration.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyEnumeration:
		return StrategyEnumeration, nil
	case StrategyNaive:
		return StrategyNaive, nil
	default:
		return "", errors.InvalidParameter("strategy",
			fmt.Sprintf("unknown strategy %q (want %q or %q)", name, StrategyEnumeration, StrategyNaive))
	}
}

type options struct {
	strategy Strategy
	basis    primes.Basis
}

// Option configures Count.
type Option func(*options)

// WithStrategy selects the counting algorithm.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithBasis selects how the type maps to a prime set.
func WithBasis(b primes.Basis) Option {
	return func(o *options) {
		o.basis = b
	}
}

// Count returns the number of generalized Hamming numbers of the given type
// that do not exceed threshold. By default the enumeration strategy is used
// and the type selects every prime less than or equal to it.
func Count(typ, threshold int64, opts ...Option) int64 {
	count, _ := CountContext(context.Background(), typ, threshold, opts...)
	return count
}

// CountContext is Count with cancellation; it fails only with ctx's error.
func CountContext(ctx context.Context, typ, threshold int64, opts ...Option) (int64, error) {
	o := options{
		strategy: StrategyEnumeration,
		basis:    primes.BasisBound,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ps := primes.ForType(typ, o.basis)
	if o.strategy == StrategyNaive {
		return CountNaiveContext(ctx, ps, threshold)
	}
	return EnumerateContext(ctx, ps, threshold, nil)
}
