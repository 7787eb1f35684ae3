package precision

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// guardBits is the extra precision used while summing series.
const guardBits = 32

var bigFloatOne = big.NewFloat(1)

func work() *big.Float {
	return new(big.Float).SetPrec(FloatPrec + guardBits)
}

// negligible reports whether a series term is below the working precision.
// All series below are evaluated on arguments bounded by π.
func negligible(term *big.Float) bool {
	return term.Sign() == 0 || term.MantExp(nil) < -(FloatPrec+guardBits)
}

// Abs returns |x|.
func Abs(x Float) Float {
	return x.Abs()
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x Float) Float {
	return FloatFromInt(x.Sign())
}

// Min returns the smaller of x and y.
func Min(x, y Float) Float {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y Float) Float {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

// Clamp returns:
//
//	min if x < min
//	max if x > max
//	  x otherwise
func Clamp(x, min, max Float) Float {
	switch {
	case x.Cmp(min) < 0:
		return min
	case x.Cmp(max) > 0:
		return max
	}
	return x
}

// Sqrt returns the square root of x.
// Sqrt panics if x < 0.
func Sqrt(x Float) Float {
	return x.Sqrt()
}

// NormalizeAngle maps an angle in radians into (-π, π].
func NormalizeAngle(x Float) Float {
	return normalizeAngle(x, floatTwoPi, floatPi)
}

// NormalizeAngleDeg maps an angle in degrees into (-180, 180].
func NormalizeAngleDeg(x Float) Float {
	return normalizeAngle(x, float360, float180)
}

func normalizeAngle(x, full, half Float) Float {
	r := x.Rem(full)
	switch {
	case r.Cmp(half) > 0:
		r = r.Sub(full)
	case r.Cmp(half.Neg()) <= 0:
		r = r.Add(full)
	}
	return r
}

// Sin returns the sine of x radians.
// Sin panics if x is infinite.
func Sin(x Float) Float {
	r := NormalizeAngle(x).big()
	x2 := work().Mul(r, r)
	term := work().Set(r)
	sum := work().Set(r)
	for n := int64(1); ; n++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Float).SetInt64(-(2*n)*(2*n+1)))
		if negligible(term) {
			break
		}
		sum.Add(sum, term)
	}
	return Float{v: newFloat().Set(sum)}
}

// Cos returns the cosine of x radians.
// Cos panics if x is infinite.
func Cos(x Float) Float {
	r := NormalizeAngle(x).big()
	x2 := work().Mul(r, r)
	term := work().SetInt64(1)
	sum := work().SetInt64(1)
	for n := int64(1); ; n++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Float).SetInt64(-(2*n-1)*(2*n)))
		if negligible(term) {
			break
		}
		sum.Add(sum, term)
	}
	return Float{v: newFloat().Set(sum)}
}

// Tan returns the tangent of x radians.
func Tan(x Float) Float {
	return Sin(x).Quo(Cos(x))
}

// SinDeg returns the sine of x degrees.
func SinDeg(x Float) Float {
	return Sin(NormalizeAngleDeg(x).Mul(floatDegToRad))
}

// CosDeg returns the cosine of x degrees.
func CosDeg(x Float) Float {
	return Cos(NormalizeAngleDeg(x).Mul(floatDegToRad))
}

// TanDeg returns the tangent of x degrees.
func TanDeg(x Float) Float {
	return Tan(NormalizeAngleDeg(x).Mul(floatDegToRad))
}

// Atan returns the arctangent of x in radians, in [-π/2, π/2].
func Atan(x Float) Float {
	if x.IsZero() {
		return Float{}
	}
	a := work().Abs(x.big())
	invert := a.Cmp(bigFloatOne) > 0
	if invert {
		a = work().Quo(bigFloatOne, a)
	}

	// atan(a) = 2 * atan(a / (1 + sqrt(1 + a^2)))
	halvings := 0
	for a.Cmp(big.NewFloat(0.125)) > 0 {
		t := work().Mul(a, a)
		t.Add(t, bigFloatOne)
		t.Sqrt(t)
		t.Add(t, bigFloatOne)
		a = work().Quo(a, t)
		halvings++
	}

	// atan(a) = a - a^3/3 + a^5/5 - ...
	a2 := work().Mul(a, a)
	pow := work().Set(a)
	sum := work().Set(a)
	for n := int64(1); ; n++ {
		pow.Mul(pow, a2)
		pow.Neg(pow)
		term := work().Quo(pow, new(big.Float).SetInt64(2*n+1))
		if negligible(term) {
			break
		}
		sum.Add(sum, term)
	}
	sum.SetMantExp(sum, halvings)

	if invert {
		sum.Sub(floatHalfPi.big(), sum)
	}
	if x.IsNeg() {
		sum.Neg(sum)
	}
	return Float{v: newFloat().Set(sum)}
}

// Asin returns the arcsine of x in radians, in [-π/2, π/2].
// Asin panics if |x| > 1.
func Asin(x Float) Float {
	switch c := x.Abs().Cmp(FloatFromInt(1)); {
	case c > 0:
		panic(fmt.Sprintf("Asin(%v) failed: %v", x, errNaN))
	case c == 0 && x.IsNeg():
		return floatHalfPi.Neg()
	case c == 0:
		return floatHalfPi
	}
	one := FloatFromInt(1)
	return Atan(x.Quo(one.Sub(x.Mul(x)).Sqrt()))
}

// Acos returns the arccosine of x in radians, in [0, π].
// Acos panics if |x| > 1.
func Acos(x Float) Float {
	return floatHalfPi.Sub(Asin(x))
}

// Atan2 returns the angle in radians of the point (x, y), in [-π, π].
// Off the axes the result is in (-π, π), on the axes it is exact:
//
//	Atan2(0, 0)  =  0
//	Atan2(0, x)  =  0    for x > 0
//	Atan2(0, x)  = -π    for x < 0
//	Atan2(y, 0)  =  π/2  for y > 0
//	Atan2(y, 0)  = -π/2  for y < 0
func Atan2(y, x Float) Float {
	return atan2(y, x, floatPi, Atan, NormalizeAngle)
}

// AsinDeg is like [Asin] but returns degrees.
func AsinDeg(x Float) Float {
	return Asin(x).Mul(floatRadToDeg)
}

// AcosDeg is like [Acos] but returns degrees.
func AcosDeg(x Float) Float {
	return Acos(x).Mul(floatRadToDeg)
}

// AtanDeg is like [Atan] but returns degrees.
func AtanDeg(x Float) Float {
	return Atan(x).Mul(floatRadToDeg)
}

// Atan2Deg is like [Atan2] but returns degrees in [-180, 180].
func Atan2Deg(y, x Float) Float {
	return atan2(y, x, float180, AtanDeg, NormalizeAngleDeg)
}

func atan2(y, x, half Float, atan, normalize func(Float) Float) Float {
	switch {
	case y.IsZero() && x.IsNeg():
		return half.Neg()
	case y.IsZero():
		return Float{}
	case x.IsZero() && y.IsPos():
		return half.Quo(floatTwo)
	case x.IsZero():
		return half.Quo(floatTwo).Neg()
	}
	r := atan(y.Quo(x))
	if x.IsNeg() {
		r = normalize(r.Add(half))
	}
	return r
}

// Exp returns e^x.
func Exp(x Float) Float {
	switch {
	case x.IsInf() && x.IsNeg():
		return Float{}
	case x.IsInf():
		return x
	case x.IsZero():
		return FloatFromInt(1)
	}
	return Float{v: newFloat().Set(bigfloat.Exp(x.Big()))}
}

// Log returns the natural logarithm of x.
// Log(0) is -Inf and Log(+Inf) is +Inf.
// Log panics if x < 0.
func Log(x Float) Float {
	switch {
	case x.IsNeg():
		panic(fmt.Sprintf("Log(%v) failed: %v", x, errNaN))
	case x.IsZero():
		return Float{v: newFloat().SetInf(true)}
	case x.IsInf():
		return x
	}
	return Float{v: newFloat().Set(bigfloat.Log(x.Big()))}
}

// Log2 returns the binary logarithm of x.
// Log2 panics if x < 0.
func Log2(x Float) Float {
	return Log(x).Quo(floatLn2)
}

// Log10 returns the decimal logarithm of x.
// Log10 panics if x < 0.
func Log10(x Float) Float {
	return Log(x).Quo(floatLn10)
}

// Pow returns x^y.
// Integer exponents are computed by repeated squaring and accept negative
// bases, other exponents are computed as e^(y*log(x)).
// Results beyond the exponent range become an infinity or 0.
// Pow panics if x < 0 and y is not an integer.
func Pow(x, y Float) Float {
	if y.IsInt() {
		n, _ := y.big().Int(nil)
		return powInt(x, n)
	}
	switch {
	case x.IsNeg():
		panic(fmt.Sprintf("Pow(%v, %v) failed: %v", x, y, errNaN))
	case x.IsZero() && y.IsNeg():
		return Float{v: newFloat().SetInf(false)}
	case x.IsZero():
		return Float{}
	}
	return Float{v: newFloat().Set(bigfloat.Pow(x.Big(), y.Big()))}
}

func powInt(x Float, n *big.Int) Float {
	u := new(big.Int).Abs(n)
	z := work().SetInt64(1)
	b := work().Abs(x.big())
	for i, nbits := 0, u.BitLen(); i < nbits; i++ {
		if b.IsInf() || b.Sign() == 0 {
			// The highest bit of u is still ahead
			z.Set(b)
			break
		}
		if u.Bit(i) == 1 {
			z.Mul(z, b)
		}
		if i+1 < u.BitLen() {
			b.Mul(b, b)
		}
	}
	if n.Sign() < 0 {
		z.Quo(bigFloatOne, z)
	}
	if x.IsNeg() && u.Bit(0) == 1 {
		z.Neg(z)
	}
	return Float{v: newFloat().Set(z)}
}
