package precision

import (
	"database/sql/driver"
	"fmt"
)

var quatKeys = []string{"X", "Y", "Z", "W"}

// AxisPair selects the two axes given to [QuatFromAxes].
type AxisPair uint8

const (
	AxesXY AxisPair = iota
	AxesYZ
	AxesXZ
)

// slerpLinearThreshold is the dot product above which [Slerp] falls back to
// a normalized linear interpolation.
const slerpLinearThreshold = 0.9995

// axisAngleEpsilon is the smallest sin(angle/2) for which [Quat.AxisAngle]
// derives the axis from the quaternion.
const axisAngleEpsilon = 1e-14

// Quat type represents a quaternion of arbitrary-precision floats.
// Only unit quaternions represent rotations, see [Quat.Normalized].
//
// Note that the zero value is not the identity rotation, use
// [IdentityQuat] instead.
type Quat struct {
	X, Y, Z, W Float
}

// IdentityQuat returns the quaternion (0, 0, 0, 1), which does not rotate.
func IdentityQuat() Quat {
	return Quat{W: FloatFromInt(1)}
}

// NewQuat returns the quaternion (x, y, z, w).
// To build a rotation, see [QuatFromAxisAngle] and [QuatFromRotator].
func NewQuat(x, y, z, w Float) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// QuatFromAxisAngle returns the rotation of angle degrees around axis.
// The axis is expected to be normalized.
func QuatFromAxisAngle(axis VectorFloat, angle Float) Quat {
	half := angle.Quo(floatTwo)
	s, c := SinDeg(half), CosDeg(half)
	return Quat{X: s.Mul(axis.X), Y: s.Mul(axis.Y), Z: s.Mul(axis.Z), W: c}
}

// QuatFromRotator returns the rotation equivalent to r.
// See also method [Rotator.Quat].
func QuatFromRotator(r Rotator) Quat {
	sy, cy := SinDeg(r.Yaw.Quo(floatTwo)), CosDeg(r.Yaw.Quo(floatTwo))
	sp, cp := SinDeg(r.Pitch.Quo(floatTwo)), CosDeg(r.Pitch.Quo(floatTwo))
	sr, cr := SinDeg(r.Roll.Quo(floatTwo)), CosDeg(r.Roll.Quo(floatTwo))
	q := Quat{
		X: sr.Mul(cp).Mul(cy).Sub(cr.Mul(sp).Mul(sy)),
		Y: cr.Mul(sp).Mul(cy).Add(sr.Mul(cp).Mul(sy)),
		Z: cr.Mul(cp).Mul(sy).Sub(sr.Mul(sp).Mul(cy)),
		W: cr.Mul(cp).Mul(cy).Add(sr.Mul(sp).Mul(sy)),
	}
	return q.Normalized()
}

// QuatFromAxes returns the rotation that maps the base axes onto the
// coordinate system defined by two vectors.
// The axes selects which two axes v1 and v2 represent, the third axis is
// derived so that the system is right-handed.
// Only v1 keeps its direction, v2 is orthogonalized against it.
func QuatFromAxes(v1, v2 VectorFloat, axes AxisPair) Quat {
	n1 := v1.Normal()
	n3 := n1.Cross(v2).Normal()
	n2 := n3.Cross(n1).Normal()

	var vx, vy, vz VectorFloat
	switch axes {
	case AxesYZ:
		vx, vy, vz = n3, n1, n2
	case AxesXZ:
		vx, vy, vz = n1, n3.Neg(), n2
	default:
		vx, vy, vz = n1, n2, n3
	}

	// Rows are the images of the base axes
	m := [3][3]Float{
		{vx.X, vx.Y, vx.Z},
		{vy.X, vy.Y, vy.Z},
		{vz.X, vz.Y, vz.Z},
	}
	one := FloatFromInt(1)
	half := MustNewFloat(0.5)

	if tr := m[0][0].Add(m[1][1]).Add(m[2][2]); tr.IsPos() {
		invS := one.Quo(tr.Add(one).Sqrt())
		s := half.Mul(invS)
		return Quat{
			X: m[1][2].Sub(m[2][1]).Mul(s),
			Y: m[2][0].Sub(m[0][2]).Mul(s),
			Z: m[0][1].Sub(m[1][0]).Mul(s),
			W: half.Quo(invS),
		}
	}

	// Largest diagonal element
	m00, m11, m22 := m[0][0], m[1][1], m[2][2]
	switch {
	case m00.Cmp(m11) >= 0 && m00.Cmp(m22) >= 0:
		invS := one.Quo(m00.Sub(m11).Sub(m22).Add(one).Sqrt())
		s := half.Mul(invS)
		return Quat{
			X: half.Quo(invS),
			Y: m[0][1].Add(m[1][0]).Mul(s),
			Z: m[0][2].Add(m[2][0]).Mul(s),
			W: m[1][2].Sub(m[2][1]).Mul(s),
		}
	case m11.Cmp(m22) >= 0:
		invS := one.Quo(m11.Sub(m22).Sub(m00).Add(one).Sqrt())
		s := half.Mul(invS)
		return Quat{
			X: m[1][0].Add(m[0][1]).Mul(s),
			Y: half.Quo(invS),
			Z: m[1][2].Add(m[2][1]).Mul(s),
			W: m[2][0].Sub(m[0][2]).Mul(s),
		}
	default:
		invS := one.Quo(m22.Sub(m00).Sub(m11).Add(one).Sqrt())
		s := half.Mul(invS)
		return Quat{
			X: m[2][0].Add(m[0][2]).Mul(s),
			Y: m[2][1].Add(m[1][2]).Mul(s),
			Z: half.Quo(invS),
			W: m[0][1].Sub(m[1][0]).Mul(s),
		}
	}
}

// ParseQuat converts a string of the form "(X=0,Y=0,Z=0,W=1)" to a
// quaternion.
func ParseQuat(s string) (Quat, error) {
	vals, err := parseFields(s, quatKeys...)
	if err != nil {
		return Quat{}, fmt.Errorf("parsing quaternion: %w", err)
	}
	var c [4]Float
	for i, v := range vals {
		c[i], err = ParseFloat(v)
		if err != nil {
			return Quat{}, fmt.Errorf("parsing quaternion component %v: %w", quatKeys[i], err)
		}
	}
	return Quat{X: c[0], Y: c[1], Z: c[2], W: c[3]}, nil
}

// MustParseQuat is like [ParseQuat] but panics if the string cannot be parsed.
func MustParseQuat(s string) Quat {
	q, err := ParseQuat(s)
	if err != nil {
		panic(fmt.Sprintf("ParseQuat(%q) failed: %v", s, err))
	}
	return q
}

func (q Quat) vector() VectorFloat {
	return VectorFloat{X: q.X, Y: q.Y, Z: q.Z}
}

// RotateVector returns v rotated by q.
func (q Quat) RotateVector(v VectorFloat) VectorFloat {
	return rotate(q.vector(), q.W, v)
}

// UnrotateVector returns v rotated by the inverse of q, so that
// q.UnrotateVector(q.RotateVector(v)) = v.
func (q Quat) UnrotateVector(v VectorFloat) VectorFloat {
	return rotate(q.vector().Neg(), q.W, v)
}

// rotate computes v + w*t + u×t with t = 2(u×v).
func rotate(u VectorFloat, w Float, v VectorFloat) VectorFloat {
	t := u.Cross(v).MulScalar(floatTwo)
	return v.Add(t.MulScalar(w)).Add(u.Cross(t))
}

// Mul returns the composition of q and r: rotating a vector by q.Mul(r)
// rotates it by q first, then by r.
func (q Quat) Mul(r Quat) Quat {
	// Hamilton product r⊗q with eight multiplications
	t0 := r.Z.Sub(r.Y).Mul(q.Y.Sub(q.Z))
	t1 := r.W.Add(r.X).Mul(q.W.Add(q.X))
	t2 := r.W.Sub(r.X).Mul(q.Y.Add(q.Z))
	t3 := r.Y.Add(r.Z).Mul(q.W.Sub(q.X))
	t4 := r.Z.Sub(r.X).Mul(q.X.Sub(q.Y))
	t5 := r.Z.Add(r.X).Mul(q.X.Add(q.Y))
	t6 := r.W.Add(r.Y).Mul(q.W.Sub(q.Z))
	t7 := r.W.Sub(r.Y).Mul(q.W.Add(q.Z))
	t8 := t5.Add(t6).Add(t7)
	t9 := t4.Add(t8).Quo(floatTwo)
	return Quat{
		X: t1.Add(t9).Sub(t8),
		Y: t2.Add(t9).Sub(t7),
		Z: t3.Add(t9).Sub(t6),
		W: t0.Add(t9).Sub(t5),
	}
}

// Add returns the component-wise sum q + r.
func (q Quat) Add(r Quat) Quat {
	return Quat{X: q.X.Add(r.X), Y: q.Y.Add(r.Y), Z: q.Z.Add(r.Z), W: q.W.Add(r.W)}
}

// Sub returns the component-wise difference q - r.
func (q Quat) Sub(r Quat) Quat {
	return Quat{X: q.X.Sub(r.X), Y: q.Y.Sub(r.Y), Z: q.Z.Sub(r.Z), W: q.W.Sub(r.W)}
}

// Scale returns q with every component multiplied by s.
func (q Quat) Scale(s Float) Quat {
	return Quat{X: q.X.Mul(s), Y: q.Y.Mul(s), Z: q.Z.Mul(s), W: q.W.Mul(s)}
}

// Neg returns -q, which represents the same rotation as q.
func (q Quat) Neg() Quat {
	return Quat{X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg(), W: q.W.Neg()}
}

// Dot returns the 4-dimensional dot product of q and r.
func (q Quat) Dot(r Quat) Float {
	return q.X.Mul(r.X).Add(q.Y.Mul(r.Y)).Add(q.Z.Mul(r.Z)).Add(q.W.Mul(r.W))
}

// SizeSquared returns the squared norm of q.
func (q Quat) SizeSquared() Float {
	return q.Dot(q)
}

// Size returns the norm of q.
func (q Quat) Size() Float {
	return q.SizeSquared().Sqrt()
}

// Normalized returns q scaled to unit norm.
// Normalized panics if q is zero.
func (q Quat) Normalized() Quat {
	size := q.Size()
	return Quat{X: q.X.Quo(size), Y: q.Y.Quo(size), Z: q.Z.Quo(size), W: q.W.Quo(size)}
}

// Inverse returns the conjugate of q, which is the inverse rotation of a
// unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg(), W: q.W}
}

// AxisAngle returns the rotation axis and the angle in degrees of q.
// If the angle is too small to derive an axis, the axis is (1, 0, 0).
// See also constructor [QuatFromAxisAngle].
func (q Quat) AxisAngle() (axis VectorFloat, angle Float) {
	one := FloatFromInt(1)
	w := Clamp(q.W, one.Neg(), one)
	size := Max(one.Sub(w.Mul(w)), Float{}).Sqrt()
	if size.Cmp(MustNewFloat(axisAngleEpsilon)) >= 0 {
		axis = q.vector().QuoScalar(size)
	} else {
		axis = VectorFloat{X: one}
	}
	return axis, AcosDeg(w).Mul(floatTwo)
}

// Rotator returns the rotator equivalent to q.
// See also constructor [RotatorFromQuat].
func (q Quat) Rotator() Rotator {
	return RotatorFromQuat(q)
}

// Slerp returns the spherical linear interpolation between a and b by
// alpha, along the shortest path.
// When the quaternions are nearly parallel, a normalized linear
// interpolation is returned instead.
func Slerp(a, b Quat, alpha Float) Quat {
	dot := a.Dot(b)
	if dot.IsNeg() {
		b = b.Neg()
		dot = dot.Neg()
	}
	if dot.Cmp(MustNewFloat(slerpLinearThreshold)) > 0 {
		return a.Add(b.Sub(a).Scale(alpha)).Normalized()
	}
	theta0 := Acos(Min(dot, FloatFromInt(1)))
	theta := theta0.Mul(alpha)
	sinTheta, sinTheta0 := Sin(theta), Sin(theta0)
	s0 := Cos(theta).Sub(dot.Mul(sinTheta).Quo(sinTheta0))
	s1 := sinTheta.Quo(sinTheta0)
	return a.Scale(s0).Add(b.Scale(s1))
}

// Equal is like [Quat.EqualWithin] with a tolerance of 1e-8.
func (q Quat) Equal(r Quat) bool {
	return q.EqualWithin(r, MustNewFloat(defaultTolerance))
}

// EqualWithin returns true if the sum of the absolute differences of the
// components of q and r is at most tol.
// Note that q and -q represent the same rotation but are not equal.
func (q Quat) EqualWithin(r Quat, tol Float) bool {
	d := q.Sub(r)
	sum := d.X.Abs().Add(d.Y.Abs()).Add(d.Z.Abs()).Add(d.W.Abs())
	return sum.Cmp(tol) <= 0
}

// String implements the [fmt.Stringer] interface and returns a string of
// the form "(X=0,Y=0,Z=0,W=1)".
// See also constructor [ParseQuat].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (q Quat) String() string {
	return formatFields(quatKeys, q.X.String(), q.Y.String(), q.Z.String(), q.W.String())
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseQuat].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (q *Quat) UnmarshalText(text []byte) error {
	var err error
	*q, err = ParseQuat(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Quat{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Quat.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (q Quat) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (q *Quat) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*q, err = ParseQuat(value)
	case []byte:
		*q, err = ParseQuat(string(value))
	case nil:
		err = fmt.Errorf("null values are not supported")
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Quat{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (q Quat) Value() (driver.Value, error) {
	return q.String(), nil
}
