package ssm

import "errors"

var (
	// ErrInvalidDimension is returned when system dimensions are negative or
	// the system matrices don't agree.
	ErrInvalidDimension = errors.New("ssm: invalid system dimensions")

	// ErrZeroLeadingCoefficient is returned when the highest order denominator
	// coefficient of a transfer function is zero or not finite.
	ErrZeroLeadingCoefficient = errors.New("ssm: leading denominator coefficient is zero")

	// ErrInvalidTimeConstant is returned for time constants that are not
	// positive and finite.
	ErrInvalidTimeConstant = errors.New("ssm: time constant must be positive and finite")

	// ErrInvalidStep is returned for sample periods that are not positive and
	// finite.
	ErrInvalidStep = errors.New("ssm: sample period must be positive and finite")

	// ErrSingular is returned when the state dynamics matrix can't be solved
	// against during discretization. The returned error also wraps the
	// mat.Condition reported by the factorization.
	ErrSingular = errors.New("ssm: matrix is singular, cannot discretize")

	// ErrNonFinite is returned when the discretized matrices overflow, e.g. for
	// large sample periods of unstable models or badly scaled high orders.
	ErrNonFinite = errors.New("ssm: discretization produced non-finite values")

	// ErrAlreadyDiscrete is returned when discretizing a discrete time model.
	ErrAlreadyDiscrete = errors.New("ssm: model is already discrete")
)
