package precision

import (
	"database/sql/driver"
	"fmt"
)

var rotatorKeys = []string{"Yaw", "Pitch", "Roll"}

// Rotator type represents an orientation as three angles in degrees:
// Yaw around the Z axis, Pitch around the Y axis and Roll around the X axis.
// Its zero value does not rotate.
type Rotator struct {
	Yaw, Pitch, Roll Float
}

// NewRotator returns the rotator (yaw, pitch, roll).
func NewRotator(yaw, pitch, roll Float) Rotator {
	return Rotator{Yaw: yaw, Pitch: pitch, Roll: roll}
}

// RotatorFromQuat returns the rotator equivalent to q, which must be
// normalized.
// Near the poles, where the pitch reaches ±90 degrees, the pitch is clamped
// and yaw and roll are no longer unique.
// See also method [Rotator.Quat].
func RotatorFromQuat(q Quat) Rotator {
	one := FloatFromInt(1)

	sinp := q.W.Mul(q.Y).Sub(q.Z.Mul(q.X)).Mul(floatTwo)
	var pitch Float
	if sinp.Abs().Cmp(one) >= 0 {
		pitch = float180.Quo(floatTwo)
		if sinp.IsNeg() {
			pitch = pitch.Neg()
		}
	} else {
		pitch = AsinDeg(sinp)
	}

	roll := Atan2Deg(
		q.W.Mul(q.X).Add(q.Y.Mul(q.Z)).Mul(floatTwo),
		one.Sub(q.X.Mul(q.X).Add(q.Y.Mul(q.Y)).Mul(floatTwo)),
	)
	yaw := Atan2Deg(
		q.W.Mul(q.Z).Add(q.X.Mul(q.Y)).Mul(floatTwo),
		one.Sub(q.Y.Mul(q.Y).Add(q.Z.Mul(q.Z)).Mul(floatTwo)),
	)
	return Rotator{Yaw: yaw, Pitch: pitch, Roll: roll}
}

// ParseRotator converts a string of the form "(Yaw=90,Pitch=0,Roll=0)" to a
// rotator.
func ParseRotator(s string) (Rotator, error) {
	vals, err := parseFields(s, rotatorKeys...)
	if err != nil {
		return Rotator{}, fmt.Errorf("parsing rotator: %w", err)
	}
	var c [3]Float
	for i, v := range vals {
		c[i], err = ParseFloat(v)
		if err != nil {
			return Rotator{}, fmt.Errorf("parsing rotator component %v: %w", rotatorKeys[i], err)
		}
	}
	return Rotator{Yaw: c[0], Pitch: c[1], Roll: c[2]}, nil
}

// MustParseRotator is like [ParseRotator] but panics if the string cannot be parsed.
func MustParseRotator(s string) Rotator {
	r, err := ParseRotator(s)
	if err != nil {
		panic(fmt.Sprintf("ParseRotator(%q) failed: %v", s, err))
	}
	return r
}

// Quat returns the quaternion equivalent to r.
func (r Rotator) Quat() Quat {
	return QuatFromRotator(r)
}

// RotateVector returns v rotated by r.
func (r Rotator) RotateVector(v VectorFloat) VectorFloat {
	return r.Quat().RotateVector(v)
}

// UnrotateVector returns v rotated by the inverse of r.
func (r Rotator) UnrotateVector(v VectorFloat) VectorFloat {
	return r.Quat().UnrotateVector(v)
}

// Add returns the component-wise sum r + s.
// The angles are not normalized, see [Rotator.Normalized].
func (r Rotator) Add(s Rotator) Rotator {
	return Rotator{Yaw: r.Yaw.Add(s.Yaw), Pitch: r.Pitch.Add(s.Pitch), Roll: r.Roll.Add(s.Roll)}
}

// Sub returns the component-wise difference r - s.
func (r Rotator) Sub(s Rotator) Rotator {
	return Rotator{Yaw: r.Yaw.Sub(s.Yaw), Pitch: r.Pitch.Sub(s.Pitch), Roll: r.Roll.Sub(s.Roll)}
}

// Mul returns the component-wise product of r and s.
func (r Rotator) Mul(s Rotator) Rotator {
	return Rotator{Yaw: r.Yaw.Mul(s.Yaw), Pitch: r.Pitch.Mul(s.Pitch), Roll: r.Roll.Mul(s.Roll)}
}

// Quo returns the component-wise quotient of r and s.
func (r Rotator) Quo(s Rotator) Rotator {
	return Rotator{Yaw: r.Yaw.Quo(s.Yaw), Pitch: r.Pitch.Quo(s.Pitch), Roll: r.Roll.Quo(s.Roll)}
}

// MulScalar returns r with every angle multiplied by f.
func (r Rotator) MulScalar(f Float) Rotator {
	return Rotator{Yaw: r.Yaw.Mul(f), Pitch: r.Pitch.Mul(f), Roll: r.Roll.Mul(f)}
}

// QuoScalar returns r with every angle divided by f.
func (r Rotator) QuoScalar(f Float) Rotator {
	return Rotator{Yaw: r.Yaw.Quo(f), Pitch: r.Pitch.Quo(f), Roll: r.Roll.Quo(f)}
}

// Neg returns -r.
// Note that -r is not the inverse rotation of r unless at most one angle
// is non-zero, see [Rotator.UnrotateVector].
func (r Rotator) Neg() Rotator {
	return Rotator{Yaw: r.Yaw.Neg(), Pitch: r.Pitch.Neg(), Roll: r.Roll.Neg()}
}

// Normalized returns r with every angle mapped into (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{
		Yaw:   NormalizeAngleDeg(r.Yaw),
		Pitch: NormalizeAngleDeg(r.Pitch),
		Roll:  NormalizeAngleDeg(r.Roll),
	}
}

// AbsSum returns the sum of the absolute values of the angles.
func (r Rotator) AbsSum() Float {
	return r.Yaw.Abs().Add(r.Pitch.Abs()).Add(r.Roll.Abs())
}

// IsZero returns true if all angles are zero.
func (r Rotator) IsZero() bool {
	return r.Yaw.IsZero() && r.Pitch.IsZero() && r.Roll.IsZero()
}

// Axis returns the angle of the rotation around the given axis:
// Roll for [AxisX], Pitch for [AxisY] and Yaw for [AxisZ].
func (r Rotator) Axis(a Axis) Float {
	switch a {
	case AxisX:
		return r.Roll
	case AxisY:
		return r.Pitch
	}
	return r.Yaw
}

// Equal is like [Rotator.EqualWithin] with a tolerance of 1e-8.
func (r Rotator) Equal(s Rotator) bool {
	return r.EqualWithin(s, MustNewFloat(defaultTolerance))
}

// EqualWithin returns true if the sum of the absolute differences of the
// angles of r and s is at most tol.
// Angles are compared as is, so 180 and -180 are not equal.
func (r Rotator) EqualWithin(s Rotator, tol Float) bool {
	return r.Sub(s).AbsSum().Cmp(tol) <= 0
}

// String implements the [fmt.Stringer] interface and returns a string of
// the form "(Yaw=90,Pitch=0,Roll=0)".
// See also constructor [ParseRotator].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r Rotator) String() string {
	return formatFields(rotatorKeys, r.Yaw.String(), r.Pitch.String(), r.Roll.String())
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseRotator].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (r *Rotator) UnmarshalText(text []byte) error {
	var err error
	*r, err = ParseRotator(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rotator{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Rotator.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (r Rotator) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (r *Rotator) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*r, err = ParseRotator(value)
	case []byte:
		*r, err = ParseRotator(string(value))
	case nil:
		err = fmt.Errorf("null values are not supported")
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Rotator{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (r Rotator) Value() (driver.Value, error) {
	return r.String(), nil
}
