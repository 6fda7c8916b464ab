package hamming

import (
	"context"
	"slices"
)

// The context is polled once per this many visited nodes.
const cancelCheckInterval = 1 << 14

// frame is one node of the enumeration tree: a partial product and the
// position in the prime set from which further factors may be chosen.
type frame struct {
	product int64
	index   int
}

// Enumerate visits every distinct product of primes that does not exceed
// threshold, starting with the empty product 1, and returns how many it
// visited. visit may be nil.
//
// primes must be ascending. Children of a node only extend from the node's
// own index onward, so each multiset of prime factors is reached by exactly
// one path. A child is admitted only when product <= threshold/prime, which
// never forms a value above threshold and therefore cannot overflow.
func Enumerate(primes []int64, threshold int64, visit func(int64)) int64 {
	count, _ := EnumerateContext(context.Background(), primes, threshold, visit)
	return count
}

// EnumerateContext is Enumerate with cancellation. It returns the context
// error, along with the partial count, once ctx is done.
func EnumerateContext(ctx context.Context, primes []int64, threshold int64, visit func(int64)) (int64, error) {
	if threshold < 1 {
		return 0, nil
	}

	var count int64
	stack := []frame{{product: 1, index: 0}}

	for len(stack) > 0 {
		if count%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return count, err
			}
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count++
		if visit != nil {
			visit(node.product)
		}

		for i := node.index; i < len(primes); i++ {
			p := primes[i]
			if p < 2 {
				continue
			}
			// Ascending primes: once one child is too large, so are the rest.
			if node.product > threshold/p {
				break
			}
			stack = append(stack, frame{product: node.product * p, index: i})
		}
	}

	return count, nil
}

// CountEnumeration returns the number of generalized Hamming numbers over
// primes that do not exceed threshold, including 1.
func CountEnumeration(primes []int64, threshold int64) int64 {
	return Enumerate(primes, threshold, nil)
}

// Numbers returns the generalized Hamming numbers over primes that do not
// exceed threshold, in ascending order.
func Numbers(primes []int64, threshold int64) []int64 {
	numbers := []int64{}
	Enumerate(primes, threshold, func(n int64) {
		numbers = append(numbers, n)
	})
	slices.Sort(numbers)
	return numbers
}
