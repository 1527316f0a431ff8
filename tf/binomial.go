package tf

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrOverflow is returned when an integer binomial coefficient doesn't fit in
// a uint64.
var ErrOverflow = errors.New("tf: binomial coefficient overflows uint64")

// Binomial returns the binomial coefficient n choose k as a float64.
//
// The shorter of the two equivalent products C(n,k) = C(n,n-k) is used and
// every factor is multiplied in before dividing by its index, so intermediate
// values stay close to the result. Returns 0 for k > n.
func Binomial(n, k uint) float64 {
	if k > n {
		return 0
	}
	if n-k < k {
		k = n - k
	}
	val := 1.
	for i := uint(1); i <= k; i++ {
		val = val * float64(n-k+i) / float64(i)
	}
	return val
}

// BinomialUint is the integer version of Binomial. Each partial product
// val*(n-k+i)/i is itself a binomial coefficient so the division is exact.
// The product is formed in 128 bits and ErrOverflow is returned once a
// partial result no longer fits in a uint64.
func BinomialUint(n, k uint) (uint64, error) {
	if k > n {
		return 0, nil
	}
	if n-k < k {
		k = n - k
	}
	var val uint64 = 1
	for i := uint64(1); i <= uint64(k); i++ {
		hi, lo := bits.Mul64(val, uint64(n-k)+i)
		if hi >= i {
			return 0, fmt.Errorf("%w: C(%d,%d)", ErrOverflow, n, k)
		}
		val, _ = bits.Div64(hi, lo, i)
	}
	return val, nil
}
