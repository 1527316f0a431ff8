// Package tf holds single-input single-output transfer functions described by
// their numerator and denominator polynomials in s.
//
// Coefficients are stored in ascending powers of s, i.e.
//
// H(s) = (n_0 + n_1 s + ... ) / (d_0 + d_1 s + ... + d_N s^N)
//
// where N is the order of the transfer function.
package tf

// TransferFunction is an immutable rational transfer function.
type TransferFunction struct {
	num   []float64
	denom []float64
}

// NewDifferentiatorFilter returns the transfer function of an order-th order
// low-pass filtered differentiator where the denominator is
//
// (1 + timeConstant s)^order
//
// expanded in powers of s, and the numerator is the constant 1.
func NewDifferentiatorFilter(order uint, timeConstant float64) *TransferFunction {
	denom := make([]float64, order+1)
	timeConstantPowK := 1.
	for k := uint(0); k <= order; k++ {
		denom[k] = Binomial(order, k) * timeConstantPowK
		timeConstantPowK *= timeConstant
	}
	return &TransferFunction{
		num:   []float64{1},
		denom: denom,
	}
}

// Numerator returns a copy of the numerator coefficients.
func (h *TransferFunction) Numerator() []float64 {
	return append([]float64(nil), h.num...)
}

// Denominator returns a copy of the denominator coefficients.
func (h *TransferFunction) Denominator() []float64 {
	return append([]float64(nil), h.denom...)
}

// Order is the degree of the denominator polynomial.
func (h *TransferFunction) Order() int {
	return len(h.denom) - 1
}

// LeadingCoefficient returns the coefficient of the highest power of s in the
// denominator.
func (h *TransferFunction) LeadingCoefficient() float64 {
	return h.denom[len(h.denom)-1]
}

// Evaluate returns H(s) for a complex frequency s.
func (h *TransferFunction) Evaluate(s complex128) complex128 {
	return horner(h.num, s) / horner(h.denom, s)
}

func horner(coefficients []float64, s complex128) complex128 {
	var res complex128
	for index := len(coefficients) - 1; index >= 0; index-- {
		res = res*s + complex(coefficients[index], 0)
	}
	return res
}
