package precision

import (
	"database/sql/driver"
	"fmt"
)

// Axis identifies a component of a vector or a rotator.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

var vectorKeys = []string{"X", "Y", "Z"}

// Vector3 type represents a 3-dimensional vector with components of
// type R.
// Its zero value is the zero vector.
//
// All operations return new values, and Vector3 is safe for concurrent use
// by multiple goroutines.
type Vector3[R Real[R]] struct {
	X, Y, Z R
}

// VectorFixed is a vector of fixed-point numbers with the [Standard] layout.
type VectorFixed = Vector3[Fixed]

// VectorFloat is a vector of arbitrary-precision floats.
type VectorFloat = Vector3[Float]

// NewVector returns the vector (x, y, z).
func NewVector[R Real[R]](x, y, z R) Vector3[R] {
	return Vector3[R]{X: x, Y: y, Z: z}
}

// ParseVector converts a string of the form "(X=1,Y=2,Z=3)" to a vector.
// See [ParseFixed] and [ParseFloat] for the format of the components.
func ParseVector[R Real[R]](s string) (Vector3[R], error) {
	vals, err := parseFields(s, vectorKeys...)
	if err != nil {
		return Vector3[R]{}, fmt.Errorf("parsing vector: %w", err)
	}
	var c [3]R
	for i, v := range vals {
		c[i], err = c[i].parse(v)
		if err != nil {
			return Vector3[R]{}, fmt.Errorf("parsing vector component %v: %w", vectorKeys[i], err)
		}
	}
	return Vector3[R]{X: c[0], Y: c[1], Z: c[2]}, nil
}

// MustParseVector is like [ParseVector] but panics if the string cannot be parsed.
func MustParseVector[R Real[R]](s string) Vector3[R] {
	v, err := ParseVector[R](s)
	if err != nil {
		panic(fmt.Sprintf("ParseVector(%q) failed: %v", s, err))
	}
	return v
}

// Add returns the component-wise sum v + w.
func (v Vector3[R]) Add(w Vector3[R]) Vector3[R] {
	return Vector3[R]{X: v.X.Add(w.X), Y: v.Y.Add(w.Y), Z: v.Z.Add(w.Z)}
}

// Sub returns the component-wise difference v - w.
func (v Vector3[R]) Sub(w Vector3[R]) Vector3[R] {
	return Vector3[R]{X: v.X.Sub(w.X), Y: v.Y.Sub(w.Y), Z: v.Z.Sub(w.Z)}
}

// Mul returns the component-wise product of v and w.
func (v Vector3[R]) Mul(w Vector3[R]) Vector3[R] {
	return Vector3[R]{X: v.X.Mul(w.X), Y: v.Y.Mul(w.Y), Z: v.Z.Mul(w.Z)}
}

// Quo returns the component-wise quotient of v and w.
func (v Vector3[R]) Quo(w Vector3[R]) Vector3[R] {
	return Vector3[R]{X: v.X.Quo(w.X), Y: v.Y.Quo(w.Y), Z: v.Z.Quo(w.Z)}
}

// MulScalar returns v scaled by s.
func (v Vector3[R]) MulScalar(s R) Vector3[R] {
	return Vector3[R]{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

// QuoScalar returns v divided by s.
func (v Vector3[R]) QuoScalar(s R) Vector3[R] {
	return Vector3[R]{X: v.X.Quo(s), Y: v.Y.Quo(s), Z: v.Z.Quo(s)}
}

// Neg returns -v.
func (v Vector3[R]) Neg() Vector3[R] {
	return Vector3[R]{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

// Dot returns the dot product of v and w.
func (v Vector3[R]) Dot(w Vector3[R]) R {
	return v.X.Mul(w.X).Add(v.Y.Mul(w.Y)).Add(v.Z.Mul(w.Z))
}

// Cross returns the cross product v × w.
func (v Vector3[R]) Cross(w Vector3[R]) Vector3[R] {
	return Vector3[R]{
		X: v.Y.Mul(w.Z).Sub(v.Z.Mul(w.Y)),
		Y: v.Z.Mul(w.X).Sub(v.X.Mul(w.Z)),
		Z: v.X.Mul(w.Y).Sub(v.Y.Mul(w.X)),
	}
}

// SizeSquared returns the squared length of v.
func (v Vector3[R]) SizeSquared() R {
	return v.Dot(v)
}

// Size returns the length of v.
func (v Vector3[R]) Size() R {
	return v.SizeSquared().Sqrt()
}

// AbsSum returns the sum of the absolute values of the components.
func (v Vector3[R]) AbsSum() R {
	return v.X.Abs().Add(v.Y.Abs()).Add(v.Z.Abs())
}

// Normal is like [Vector3.NormalWithin] with a tolerance of 1e-8.
func (v Vector3[R]) Normal() Vector3[R] {
	return v.NormalWithin(fromFloat64[R](defaultTolerance))
}

// NormalWithin returns v scaled to unit length.
// If the length of v is smaller than tol, the zero vector is returned.
func (v Vector3[R]) NormalWithin(tol R) Vector3[R] {
	size := v.Size()
	if size.Cmp(tol) < 0 {
		return Vector3[R]{}
	}
	return v.QuoScalar(size)
}

// ProjectOnTo returns the projection of v onto w.
// ProjectOnTo panics if w is the zero vector.
func (v Vector3[R]) ProjectOnTo(w Vector3[R]) Vector3[R] {
	return w.MulScalar(v.Dot(w).Quo(w.SizeSquared()))
}

// Equal is like [Vector3.EqualWithin] with a tolerance of 1e-8.
func (v Vector3[R]) Equal(w Vector3[R]) bool {
	return v.EqualWithin(w, fromFloat64[R](defaultTolerance))
}

// EqualWithin returns true if the sum of the absolute differences of the
// components of v and w is at most tol.
func (v Vector3[R]) EqualWithin(w Vector3[R], tol R) bool {
	return v.Sub(w).AbsSum().Cmp(tol) <= 0
}

// IsZero returns true if all components are zero.
func (v Vector3[R]) IsZero() bool {
	return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero()
}

// Axis returns the component of v along the given axis.
func (v Vector3[R]) Axis(a Axis) R {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

// WithAxis returns a copy of v with the component along the given axis
// replaced by c.
func (v Vector3[R]) WithAxis(a Axis, c R) Vector3[R] {
	switch a {
	case AxisY:
		v.Y = c
	case AxisZ:
		v.Z = c
	default:
		v.X = c
	}
	return v
}

// String implements the [fmt.Stringer] interface and returns a string of
// the form "(X=1,Y=2,Z=3)".
// See also constructor [ParseVector].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (v Vector3[R]) String() string {
	return formatFields(vectorKeys, v.X.String(), v.Y.String(), v.Z.String())
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseVector].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (v *Vector3[R]) UnmarshalText(text []byte) error {
	var err error
	*v, err = ParseVector[R](string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling vector: %w", err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Vector3.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (v Vector3[R]) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (v *Vector3[R]) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*v, err = ParseVector[R](value)
	case []byte:
		*v, err = ParseVector[R](string(value))
	case nil:
		err = fmt.Errorf("null values are not supported")
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to vector: %w", value, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (v Vector3[R]) Value() (driver.Value, error) {
	return v.String(), nil
}

// FixedVectorToFloat converts a fixed-point vector to a float vector.
func FixedVectorToFloat[F Format](v Vector3[FixedReal[F]]) VectorFloat {
	return VectorFloat{X: v.X.Float(), Y: v.Y.Float(), Z: v.Z.Float()}
}

// FloatVectorToFixed converts a float vector to the nearest fixed-point
// vector.
// FloatVectorToFixed returns an error if a component is infinite.
func FloatVectorToFixed[F Format](v VectorFloat) (Vector3[FixedReal[F]], error) {
	var c [3]FixedReal[F]
	for i, f := range [3]Float{v.X, v.Y, v.Z} {
		var err error
		c[i], err = FixedFromFloat[F](f)
		if err != nil {
			return Vector3[FixedReal[F]]{}, fmt.Errorf("converting vector component %v: %w", vectorKeys[i], err)
		}
	}
	return Vector3[FixedReal[F]]{X: c[0], Y: c[1], Z: c[2]}, nil
}
