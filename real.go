package precision

// Real is the set of scalar types the geometry types are generic over.
// It is implemented by [FixedReal] and [Float] and cannot be implemented
// outside this package.
type Real[R any] interface {
	Add(R) R
	Sub(R) R
	Mul(R) R
	Quo(R) R
	Neg() R
	Abs() R
	Sqrt() R
	Cmp(R) int
	Sign() int
	IsZero() bool
	Float64() float64
	Float32() float32
	String() string

	fromFloat64(float64) R
	parse(string) (R, error)
}

// defaultTolerance is the tolerance used by the Equal and Normal methods
// of the geometry types, in the units of the scalar type.
const defaultTolerance = 1e-8

// fromFloat64 converts a float constant to R.
func fromFloat64[R Real[R]](f float64) R {
	var zero R
	return zero.fromFloat64(f)
}
