package precision_test

import (
	"encoding/json"
	"fmt"

	"github.com/spacekit/precision"
)

var (
	unitX = precision.MustParseVector[precision.Float]("(X=1,Y=0,Z=0)")
	unitY = precision.MustParseVector[precision.Float]("(X=0,Y=1,Z=0)")
	unitZ = precision.MustParseVector[precision.Float]("(X=0,Y=0,Z=1)")
)

// rounded converts v to fixed point, so that the printed result does not
// depend on the last bits of the computation.
func rounded(v precision.VectorFloat) precision.VectorFixed {
	w, err := precision.FloatVectorToFixed[precision.Standard](v)
	if err != nil {
		panic(err)
	}
	return w
}

// In this example, the distance between the Earth and the Moon is computed
// in centimeters and converted back to kilometers.
func Example_distance() {
	earth := precision.NewVector(
		precision.MustParseLength[precision.Standard]("1", "au"),
		precision.Fixed{},
		precision.Fixed{},
	)
	offset := precision.NewVector(
		precision.Fixed{},
		precision.MustParseLength[precision.Standard]("384400", "km"),
		precision.Fixed{},
	)
	moon := earth.Add(offset)

	fmt.Println("Earth:", earth)
	fmt.Println("Moon: ", moon)
	fmt.Println("Distance:", moon.Sub(earth).Size().ToUnit(precision.Kilometer), "km")
	// Output:
	// Earth: (X=14959787070000,Y=0,Z=0)
	// Moon:  (X=14959787070000,Y=38440000000,Z=0)
	// Distance: 384400 km
}

// Sixteenths is a narrow layout with a quantum of 1/16.
type Sixteenths struct{}

func (Sixteenths) MantissaBits() int { return 60 }
func (Sixteenths) ExponentBits() int { return 4 }

// In this example, a custom layout shows how numbers are printed with the
// fewest digits that identify them.
func Example_customLayout() {
	x := precision.MustParseFixed[Sixteenths]("1.3")
	y := x.Add(x)
	fmt.Println(x, y)
	fmt.Printf("%.3f\n", y)
	fmt.Println(precision.MinFixed[Sixteenths]())
	// Output:
	// 1.3 2.6
	// 2.625
	// 0.06
}

func ExampleParseFixed() {
	x, err := precision.ParseFixed[precision.Standard]("1.5")
	if err != nil {
		panic(err)
	}
	fmt.Println(x)
	_, err = precision.ParseFixed[precision.Standard]("m")
	fmt.Println(err != nil)
	// Output:
	// 1.5
	// true
}

func ExampleFixedReal_Mul() {
	x := precision.MustParseFixed[precision.Standard]("1.5")
	y := precision.MustParseFixed[precision.Standard]("2.25")
	fmt.Println(x.Mul(y))
	// Output: 3.375
}

func ExampleFixedReal_Quo() {
	x := precision.FixedFromInt[precision.Standard](1)
	y := precision.FixedFromInt[precision.Standard](3)
	fmt.Println(x.Quo(y))
	fmt.Println(x.Quo(y).Mul(y))
	// Output:
	// 0.33333333
	// 0.99999999
}

func ExampleMinFixed() {
	fmt.Println(precision.MinFixed[precision.Standard]())
	// Output: 0.00000001
}

func ExampleFixedReal_Format() {
	x := precision.MustParseFixed[precision.Standard]("-5.67")
	fmt.Printf("%v\n", x)
	fmt.Printf("%.1f\n", x)
	fmt.Printf("%q\n", x)
	fmt.Printf("%10v|\n", x)
	// Output:
	// -5.67
	// -5.7
	// "-5.67"
	//      -5.67|
}

func ExampleParseLength() {
	fmt.Println(precision.MustParseLength[precision.Standard]("2.5", "m"))
	fmt.Println(precision.MustParseLength[precision.Standard]("35000", "ly"))
	_, err := precision.ParseLength[precision.Standard]("1", "ft")
	fmt.Println(err != nil)
	// Output:
	// 250
	// 33112556654032800000000
	// true
}

func ExampleFixedReal_ToUnit() {
	x := precision.MustParseFixed[precision.Standard]("150000")
	fmt.Println(x.ToUnit(precision.Kilometer), "km")
	fmt.Println(x.ToUnit(precision.Meter), "m")
	// Output:
	// 1.5 km
	// 1500 m
}

func ExampleFixedReal_FromUnit() {
	x := precision.MustParseFixed[precision.Standard]("3")
	fmt.Println(x.FromUnit(precision.Kilometer), "cm")
	// Output: 300000 cm
}

func ExampleParseUnit() {
	u, err := precision.ParseUnit("Light-Year")
	if err != nil {
		panic(err)
	}
	fmt.Println(u.Name(), u)
	fmt.Println(u.Factor())
	// Output:
	// Light-Year ly
	// 946073047258080000
}

func ExampleSqrt() {
	fmt.Printf("%.20f\n", precision.Sqrt(precision.FloatFromInt(2)))
	// Output: 1.41421356237309504880
}

func ExampleExp() {
	fmt.Printf("%.15f\n", precision.Exp(precision.FloatFromInt(1)))
	// Output: 2.718281828459045
}

func ExampleLog10() {
	fmt.Printf("%.10f\n", precision.Log10(precision.FloatFromInt(1000)))
	// Output: 3.0000000000
}

func ExampleFloat_Format() {
	fmt.Printf("%.3f\n", precision.Pi())
	fmt.Printf("%+.2f\n", precision.HalfPi())
	// Output:
	// 3.142
	// +1.57
}

func ExampleSinDeg() {
	fmt.Printf("%.12f\n", precision.SinDeg(precision.FloatFromInt(30)))
	// Output: 0.500000000000
}

func ExampleAtan2Deg() {
	zero, one := precision.Float{}, precision.FloatFromInt(1)
	fmt.Println(precision.Atan2Deg(zero, one.Neg()))
	fmt.Println(precision.Atan2Deg(one, zero))
	fmt.Printf("%.9f\n", precision.Atan2Deg(one, one))
	// Output:
	// -180
	// 90
	// 45.000000000
}

func ExampleNormalizeAngleDeg() {
	fmt.Println(precision.NormalizeAngleDeg(precision.FloatFromInt(875)))
	fmt.Println(precision.NormalizeAngleDeg(precision.FloatFromInt(-194)))
	fmt.Println(precision.NormalizeAngleDeg(precision.FloatFromInt(-180)))
	// Output:
	// 155
	// 166
	// 180
}

func ExampleParseVector() {
	v, err := precision.ParseVector[precision.Fixed]("(z=3, x=1, y=2)")
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: (X=1,Y=2,Z=3)
}

func ExampleVector3_Cross() {
	v := precision.MustParseVector[precision.Fixed]("(X=1,Y=2,Z=3)")
	w := precision.MustParseVector[precision.Fixed]("(X=4,Y=5,Z=6)")
	fmt.Println(v.Cross(w))
	fmt.Println(v.Dot(w))
	// Output:
	// (X=-3,Y=6,Z=-3)
	// 32
}

func ExampleVector3_Size() {
	v := precision.MustParseVector[precision.Fixed]("(X=3,Y=4,Z=12)")
	fmt.Println(v.Size())
	// Output: 13
}

func ExampleVector3_MarshalText() {
	type body struct {
		Position precision.VectorFixed `json:"position"`
	}
	data, err := json.Marshal(body{Position: precision.MustParseVector[precision.Fixed]("(X=1,Y=-2.5,Z=3)")})
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
	// Output: {"position":"(X=1,Y=-2.5,Z=3)"}
}

func ExampleVector3_Native() {
	v := precision.MustParseVector[precision.Fixed]("(X=1.5,Y=-2,Z=0.25)")
	fmt.Println(v.Native())
	// Output: (X=1.5,Y=-2,Z=0.25)
}

func ExampleVectorFromNative() {
	v := precision.NativeVector{X: 0.1}
	fmt.Println(precision.VectorFromNative[precision.Float](v).X)
	// Output: 0.100000001490116119384765625
}

func ExampleRotator_RotateVector() {
	r := precision.MustParseRotator("(Yaw=90,Pitch=0,Roll=0)")
	v := precision.MustParseVector[precision.Float]("(X=1,Y=0.2,Z=5)")
	fmt.Println(rounded(r.RotateVector(unitX)))
	fmt.Println(rounded(r.RotateVector(v)))
	// Output:
	// (X=0,Y=1,Z=0)
	// (X=-0.2,Y=1,Z=5)
}

func ExampleRotatorFromQuat() {
	q := precision.QuatFromAxisAngle(unitZ, precision.FloatFromInt(90))
	r := precision.RotatorFromQuat(q)
	fmt.Printf("%.6f\n", r.Yaw)
	// Output: 90.000000
}

func ExampleQuat_Mul() {
	rz := precision.QuatFromAxisAngle(unitZ, precision.FloatFromInt(90))
	rx := precision.QuatFromAxisAngle(unitX, precision.FloatFromInt(90))
	// rz is applied first
	fmt.Println(rounded(rz.Mul(rx).RotateVector(unitX)))
	fmt.Println(rounded(rx.Mul(rz).RotateVector(unitX)))
	// Output:
	// (X=0,Y=0,Z=1)
	// (X=0,Y=1,Z=0)
}

func ExampleQuatFromAxes() {
	q := precision.QuatFromAxes(unitY, unitX.Neg(), precision.AxesXY)
	_, angle := q.AxisAngle()
	fmt.Printf("%.6f\n", angle)
	fmt.Println(rounded(q.RotateVector(unitX)))
	// Output:
	// 90.000000
	// (X=0,Y=1,Z=0)
}

func ExampleSlerp() {
	a := precision.IdentityQuat()
	b := precision.QuatFromAxisAngle(unitZ, precision.FloatFromInt(90))
	_, angle := precision.Slerp(a, b, precision.MustNewFloat(0.5)).AxisAngle()
	fmt.Printf("%.6f\n", angle)
	// Output: 45.000000
}
