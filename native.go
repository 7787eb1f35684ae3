package precision

import (
	"fmt"

	"github.com/chewxy/math32"
)

// NativeVector is a single-precision vector, as used by rendering and
// physics engines.
// Conversions from and to the precise types are always explicit, see
// [Vector3.Native] and [VectorFromNative].
type NativeVector struct {
	X, Y, Z float32
}

// NativeRotator is a single-precision rotator in degrees.
// See [Rotator.Native] and [RotatorFromNative].
type NativeRotator struct {
	Pitch, Yaw, Roll float32
}

// NativeQuat is a single-precision quaternion.
// See [Quat.Native] and [QuatFromNative].
type NativeQuat struct {
	X, Y, Z, W float32
}

// Size returns the length of v.
func (v NativeVector) Size() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Equal returns true if the sum of the absolute differences of the
// components of v and w is at most tol.
func (v NativeVector) Equal(w NativeVector, tol float32) bool {
	return math32.Abs(v.X-w.X)+math32.Abs(v.Y-w.Y)+math32.Abs(v.Z-w.Z) <= tol
}

func (v NativeVector) String() string {
	return fmt.Sprintf("(X=%v,Y=%v,Z=%v)", v.X, v.Y, v.Z)
}

// Equal returns true if the sum of the absolute differences of the
// angles of r and s is at most tol.
func (r NativeRotator) Equal(s NativeRotator, tol float32) bool {
	return math32.Abs(r.Pitch-s.Pitch)+math32.Abs(r.Yaw-s.Yaw)+math32.Abs(r.Roll-s.Roll) <= tol
}

func (r NativeRotator) String() string {
	return fmt.Sprintf("(Pitch=%v,Yaw=%v,Roll=%v)", r.Pitch, r.Yaw, r.Roll)
}

// Size returns the norm of q.
func (q NativeQuat) Size() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Equal returns true if the sum of the absolute differences of the
// components of q and r is at most tol.
func (q NativeQuat) Equal(r NativeQuat, tol float32) bool {
	return math32.Abs(q.X-r.X)+math32.Abs(q.Y-r.Y)+math32.Abs(q.Z-r.Z)+math32.Abs(q.W-r.W) <= tol
}

func (q NativeQuat) String() string {
	return fmt.Sprintf("(X=%v,Y=%v,Z=%v,W=%v)", q.X, q.Y, q.Z, q.W)
}

// checkNative panics on NaN, which no precise type can hold.
func checkNative(op string, fs ...float32) {
	for _, f := range fs {
		if math32.IsNaN(f) {
			panic(fmt.Sprintf("%v(%v) failed: %v", op, fs, errNaN))
		}
	}
}

// Native converts v to a single-precision vector.
// This conversion can lose data.
func (v Vector3[R]) Native() NativeVector {
	return NativeVector{X: v.X.Float32(), Y: v.Y.Float32(), Z: v.Z.Float32()}
}

// VectorFromNative converts a single-precision vector to a precise vector.
// VectorFromNative panics if a component is NaN, and fixed-point
// conversions also panic on infinities.
func VectorFromNative[R Real[R]](v NativeVector) Vector3[R] {
	checkNative("VectorFromNative", v.X, v.Y, v.Z)
	return Vector3[R]{
		X: fromFloat64[R](float64(v.X)),
		Y: fromFloat64[R](float64(v.Y)),
		Z: fromFloat64[R](float64(v.Z)),
	}
}

// Native converts r to a single-precision rotator.
// This conversion can lose data.
func (r Rotator) Native() NativeRotator {
	return NativeRotator{Pitch: r.Pitch.Float32(), Yaw: r.Yaw.Float32(), Roll: r.Roll.Float32()}
}

// RotatorFromNative converts a single-precision rotator to a precise
// rotator.
// RotatorFromNative panics if an angle is NaN.
func RotatorFromNative(r NativeRotator) Rotator {
	checkNative("RotatorFromNative", r.Pitch, r.Yaw, r.Roll)
	return Rotator{
		Yaw:   MustNewFloat(float64(r.Yaw)),
		Pitch: MustNewFloat(float64(r.Pitch)),
		Roll:  MustNewFloat(float64(r.Roll)),
	}
}

// Native converts q to a single-precision quaternion.
// This conversion can lose data.
func (q Quat) Native() NativeQuat {
	return NativeQuat{X: q.X.Float32(), Y: q.Y.Float32(), Z: q.Z.Float32(), W: q.W.Float32()}
}

// QuatFromNative converts a single-precision quaternion to a precise
// quaternion.
// QuatFromNative panics if a component is NaN.
func QuatFromNative(q NativeQuat) Quat {
	checkNative("QuatFromNative", q.X, q.Y, q.Z, q.W)
	return Quat{
		X: MustNewFloat(float64(q.X)),
		Y: MustNewFloat(float64(q.Y)),
		Z: MustNewFloat(float64(q.Z)),
		W: MustNewFloat(float64(q.W)),
	}
}
