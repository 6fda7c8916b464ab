package sweep

import (
	"hamming-numbers/internal/errors"
	"hamming-numbers/internal/primes"
)

const (
	// A sweep needs more than this many steps per axis.
	minGranularity = 10

	// Lower corner used by DefaultParams.
	defaultMinType      = 2
	defaultMinThreshold = 100
)

// Params describes a rectangular (type, threshold) sweep.
type Params struct {
	MinType      int64        `json:"minType" yaml:"min_type"`
	MaxType      int64        `json:"maxType" yaml:"max_type"`
	MinThreshold int64        `json:"minThreshold" yaml:"min_threshold"`
	MaxThreshold int64        `json:"maxThreshold" yaml:"max_threshold"`
	Granularity  int64        `json:"granularity" yaml:"granularity"`
	Basis        primes.Basis `json:"basis,omitempty" yaml:"basis,omitempty"`
}

// DefaultParams returns a sweep starting at type 2 and threshold 100.
func DefaultParams(maxType, maxThreshold, granularity int64) Params {
	return Params{
		MinType:      defaultMinType,
		MaxType:      maxType,
		MinThreshold: defaultMinThreshold,
		MaxThreshold: maxThreshold,
		Granularity:  granularity,
		Basis:        primes.BasisBound,
	}
}

// Steps returns the distance between neighbouring samples on each axis.
// A step is zero when the granularity is not positive or the axis range does
// not fit in an int64.
func (p Params) Steps() (typeStep, thresholdStep int64) {
	return step(p.MinType, p.MaxType, p.Granularity), step(p.MinThreshold, p.MaxThreshold, p.Granularity)
}

// Size returns the number of thresholds (rows) and types (columns) the sweep
// samples, without materializing the axes. Both are zero for unusable params.
func (p Params) Size() (rows, cols int64) {
	typeStep, thresholdStep := p.Steps()
	if typeStep <= 0 || thresholdStep <= 0 {
		return 0, 0
	}
	return (p.MaxThreshold-p.MinThreshold)/thresholdStep + 1, (p.MaxType-p.MinType)/typeStep + 1
}

// Validate returns nil when p describes a usable sweep, otherwise an
// INVALID_PARAMETER error naming the offending field.
func Validate(p Params) error {
	_, err := check(p)
	return err
}

// check validates p and returns its parsed basis.
func check(p Params) (primes.Basis, error) {
	if p.Granularity <= minGranularity {
		return "", errors.InvalidParameter("granularity", "granularity too low")
	}
	if p.MaxType <= p.MinType {
		return "", errors.InvalidParameter("maxType", "max type too low")
	}
	if p.MaxThreshold <= p.MinThreshold {
		return "", errors.InvalidParameter("maxThreshold", "max threshold too low")
	}
	if _, ok := span(p.MinType, p.MaxType); !ok {
		return "", errors.InvalidParameter("minType", "type range does not fit in a 64-bit integer")
	}
	if _, ok := span(p.MinThreshold, p.MaxThreshold); !ok {
		return "", errors.InvalidParameter("minThreshold", "threshold range does not fit in a 64-bit integer")
	}

	typeStep, thresholdStep := p.Steps()
	if typeStep <= 0 {
		return "", errors.InvalidParameter("granularity", "granularity is too high for the given type range")
	}
	if thresholdStep <= 0 {
		return "", errors.InvalidParameter("granularity", "granularity is too high for the given threshold range")
	}

	basis, err := primes.ParseBasis(string(p.Basis))
	if err != nil {
		return "", errors.InvalidParameter("basis", err.Error())
	}

	return basis, nil
}

// layout is a validated sweep: its basis and both sampled axes.
type layout struct {
	basis      primes.Basis
	types      []int64
	thresholds []int64
}

func plan(p Params) (*layout, error) {
	basis, err := check(p)
	if err != nil {
		return nil, err
	}

	typeStep, thresholdStep := p.Steps()
	return &layout{
		basis:      basis,
		types:      axis(p.MinType, p.MaxType, typeStep),
		thresholds: axis(p.MinThreshold, p.MaxThreshold, thresholdStep),
	}, nil
}

// Axes returns the sampled types and thresholds: min, min+step, ... up to max.
func Axes(p Params) (types, thresholds []int64, err error) {
	l, err := plan(p)
	if err != nil {
		return nil, nil, err
	}
	return l.types, l.thresholds, nil
}

// span returns hi-lo for hi > lo, and false when the difference overflows.
func span(lo, hi int64) (int64, bool) {
	d := hi - lo
	return d, d > 0
}

func step(lo, hi, granularity int64) int64 {
	d, ok := span(lo, hi)
	if !ok || granularity <= 0 {
		return 0
	}
	return d / granularity
}

// axis samples lo, lo+step, ... without stepping past hi, so values near
// math.MaxInt64 never wrap.
func axis(lo, hi, step int64) []int64 {
	n := (hi-lo)/step + 1
	values := make([]int64, n)
	for i := range values {
		values[i] = lo + int64(i)*step
	}
	return values
}
