package precision

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/govalues/decimal"
	"golang.org/x/exp/constraints"
)

// FloatPrec is the number of mantissa bits of a [Float].
const FloatPrec = 192

var (
	errInfinite = errors.New("infinite value")
	errNaN      = errors.New("result is not a number")
)

// Float type represents an arbitrary-precision binary floating-point number
// with a [FloatPrec]-bit mantissa, rounded half to even.
// Its zero value corresponds to 0.
//
// Float follows the semantics of [big.Float]: division of a non-zero number
// by zero returns an infinity, while operations whose result would be NaN
// (0/0, Inf-Inf, square root of a negative number) panic.
//
// Float is designed to be safe for concurrent use by multiple goroutines.
type Float struct {
	v *big.Float // never modified after construction, nil means 0
}

// piText holds π with more digits than FloatPrec bits can represent.
const piText = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899"

var (
	floatZero     = new(big.Float).SetPrec(FloatPrec)
	floatPi       = MustParseFloat(piText)
	floatTwo      = FloatFromInt(2)
	floatHalfPi   = floatPi.Quo(floatTwo)
	floatTwoPi    = floatPi.Mul(floatTwo)
	float180      = FloatFromInt(180)
	float360      = FloatFromInt(360)
	floatDegToRad = floatPi.Quo(float180)
	floatRadToDeg = float180.Quo(floatPi)
	floatLn2      = Log(floatTwo)
	floatLn10     = Log(FloatFromInt(10))
)

// Pi returns π.
func Pi() Float { return floatPi }

// HalfPi returns π/2.
func HalfPi() Float { return floatHalfPi }

// DegToRad returns the number of radians in one degree.
func DegToRad() Float { return floatDegToRad }

// RadToDeg returns the number of degrees in one radian.
func RadToDeg() Float { return floatRadToDeg }

func newFloat() *big.Float {
	return new(big.Float).SetPrec(FloatPrec)
}

func (x Float) big() *big.Float {
	if x.v == nil {
		return floatZero
	}
	return x.v
}

// NewFloat converts a float64 to a Float.
// The conversion is exact.
// See also method [Float.Float64].
//
// NewFloat returns an error if the float is NaN.
func NewFloat(f float64) (Float, error) {
	if math.IsNaN(f) {
		return Float{}, fmt.Errorf("converting float: special value %v", f)
	}
	return Float{v: newFloat().SetFloat64(f)}, nil
}

// MustNewFloat is like [NewFloat] but panics if the float is NaN.
func MustNewFloat(f float64) Float {
	x, err := NewFloat(f)
	if err != nil {
		panic(fmt.Sprintf("NewFloat(%v) failed: %v", f, err))
	}
	return x
}

// FloatFromInt converts an integer to a Float.
func FloatFromInt[T constraints.Integer](v T) Float {
	z := newFloat()
	if v < 0 {
		z.SetInt64(int64(v))
	} else {
		z.SetUint64(uint64(v))
	}
	return Float{v: z}
}

// FloatFromBig converts a [big.Float] to the nearest Float.
// See also method [Float.Big].
func FloatFromBig(f *big.Float) Float {
	return Float{v: newFloat().Set(f)}
}

// FloatFromDecimal converts a decimal to the nearest Float.
// See also method [Float.Decimal].
func FloatFromDecimal(d decimal.Decimal) Float {
	return MustParseFloat(d.String())
}

// ParseFloat converts a decimal string to the nearest Float.
// The string starts with an optional sign, digits with an optional decimal
// point and an optional exponent, or is an infinity:
//
//	2.4
//	-102
//	1e-30
//	-Inf
//
// Parsing stops at the first character that does not belong to the number,
// the rest of the string is ignored.
// ParseFloat returns an error if the string does not start with a number.
func ParseFloat(s string) (Float, error) {
	if f, ok := parseInf(s); ok {
		return f, nil
	}
	d, err := scanDecimal(s, maxFloatDecimalExp)
	if err != nil {
		return Float{}, fmt.Errorf("parsing float: %w", err)
	}
	v, ok := newFloat().SetString(d.text)
	if !ok {
		return Float{}, fmt.Errorf("parsing float: %w: %q", errInvalidReal, d.text)
	}
	return Float{v: v}, nil
}

func parseInf(s string) (Float, bool) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if len(s) < 3 || !strings.EqualFold(s[:3], "inf") {
		return Float{}, false
	}
	return Float{v: newFloat().SetInf(neg)}, true
}

// MustParseFloat is like [ParseFloat] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding numbers.
func MustParseFloat(s string) Float {
	x, err := ParseFloat(s)
	if err != nil {
		panic(fmt.Sprintf("ParseFloat(%q) failed: %v", s, err))
	}
	return x
}

// MaxFloat returns the largest finite Float.
func MaxFloat() Float {
	m := new(big.Int).Lsh(bigOne, FloatPrec)
	m.Sub(m, bigOne)
	z := newFloat().SetInt(m)
	return Float{v: z.SetMantExp(z, big.MaxExp-FloatPrec)}
}

// MinFloat returns the smallest positive Float.
func MinFloat() Float {
	return Float{v: newFloat().SetMantExp(big.NewFloat(0.5), big.MinExp)}
}

// Big returns a copy of the value as a [big.Float].
func (x Float) Big() *big.Float {
	return new(big.Float).Copy(x.big())
}

// Float64 returns the nearest float64.
// This conversion can lose data.
func (x Float) Float64() float64 {
	f, _ := x.big().Float64()
	return f
}

// Float32 returns the nearest float32.
// This conversion can lose data.
func (x Float) Float32() float32 {
	f, _ := x.big().Float32()
	return f
}

// Decimal converts the number to the nearest decimal.
// Decimal returns an error if the number is infinite or if its integer part
// has more than [decimal.MaxPrec] digits.
func (x Float) Decimal() (decimal.Decimal, error) {
	if x.IsInf() {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", x, errInfinite)
	}
	d, err := decimal.Parse(x.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", x, err)
	}
	return d, nil
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x = 0
//	+1 if x > 0
func (x Float) Sign() int {
	return x.big().Sign()
}

// IsZero returns true if x = 0.
func (x Float) IsZero() bool {
	return x.Sign() == 0
}

// IsNeg returns true if x < 0.
func (x Float) IsNeg() bool {
	return x.Sign() < 0
}

// IsPos returns true if x > 0.
func (x Float) IsPos() bool {
	return x.Sign() > 0
}

// IsInf returns true if x is an infinity.
func (x Float) IsInf() bool {
	return x.big().IsInf()
}

// IsInt returns true if x is an integer.
func (x Float) IsInt() bool {
	return x.big().IsInt()
}

// Add returns the rounded sum x + y.
func (x Float) Add(y Float) Float {
	return Float{v: newFloat().Add(x.big(), y.big())}
}

// Sub returns the rounded difference x - y.
func (x Float) Sub(y Float) Float {
	return Float{v: newFloat().Sub(x.big(), y.big())}
}

// Mul returns the rounded product x * y.
func (x Float) Mul(y Float) Float {
	return Float{v: newFloat().Mul(x.big(), y.big())}
}

// Quo returns the rounded quotient x / y.
// Quo returns an infinity if y = 0 and x != 0, and panics if both are zero.
func (x Float) Quo(y Float) Float {
	return Float{v: newFloat().Quo(x.big(), y.big())}
}

// Rem returns the remainder of x / y rounded towards zero, that is
// x - trunc(x/y) * y.
// The remainder has the sign of x and is smaller than y in magnitude.
// Rem panics if y = 0 or if x is infinite.
func (x Float) Rem(y Float) Float {
	if y.IsZero() || x.IsInf() {
		panic(fmt.Sprintf("Rem(%v, %v) failed: %v", x, y, errNaN))
	}
	if y.IsInf() {
		return x
	}
	a, _ := x.big().Rat(nil)
	b, _ := y.big().Rat(nil)
	q := new(big.Int).Mul(a.Num(), b.Denom())
	q.Quo(q, new(big.Int).Mul(a.Denom(), b.Num()))
	r := new(big.Rat).Mul(b, new(big.Rat).SetInt(q))
	r.Sub(a, r)
	return Float{v: newFloat().SetRat(r)}
}

// Neg returns -x.
func (x Float) Neg() Float {
	return Float{v: newFloat().Neg(x.big())}
}

// Abs returns |x|.
func (x Float) Abs() Float {
	return Float{v: newFloat().Abs(x.big())}
}

// Sqrt returns the rounded square root of x.
// Sqrt panics if x < 0.
func (x Float) Sqrt() Float {
	if x.IsZero() {
		return Float{}
	}
	return Float{v: newFloat().Sqrt(x.big())}
}

// Cmp compares numbers and returns:
//
//	-1 if x < y
//	 0 if x = y
//	+1 if x > y
func (x Float) Cmp(y Float) int {
	return x.big().Cmp(y.big())
}

// Equal returns true if x = y.
func (x Float) Equal(y Float) bool {
	return x.Cmp(y) == 0
}

// Less returns true if x < y.
func (x Float) Less(y Float) bool {
	return x.Cmp(y) < 0
}

// LessOrEqual returns true if x <= y.
func (x Float) LessOrEqual(y Float) bool {
	return x.Cmp(y) <= 0
}

// Greater returns true if x > y.
func (x Float) Greater(y Float) bool {
	return x.Cmp(y) > 0
}

// GreaterOrEqual returns true if x >= y.
func (x Float) GreaterOrEqual(y Float) bool {
	return x.Cmp(y) >= 0
}

// String implements the [fmt.Stringer] interface and returns a decimal
// representation that converts back to the same number.
// Numbers between 2^-256 and 2^256 in magnitude are written in positional
// notation with the fewest digits, such as "0.25" or "-102".
// Other numbers use scientific notation, such as "1e+300".
// Infinities are represented as "+Inf" and "-Inf".
// See also constructor [ParseFloat] and method [Float.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Float) String() string {
	return floatText(x.big())
}

// Binary exponents beyond which floatText switches notation.
const (
	floatPositionalExp = 256
	floatExactExp      = 4096
)

// floatText returns the text of String.
// Up to floatExactExp the shortest decimal is computed exactly by big.Float.
// Beyond it, exact conversion would need millions of digits, so the number is
// scaled by a power of ten and written with enough significant digits to
// identify it.
func floatText(f *big.Float) string {
	e := f.MantExp(nil)
	switch {
	case f.IsInf() || f.Sign() == 0:
		return f.Text('f', -1)
	case -floatPositionalExp <= e && e <= floatPositionalExp:
		return f.Text('f', -1)
	case -floatExactExp <= e && e <= floatExactExp:
		return f.Text('e', -1)
	}

	// 60 significant digits are always closer to f than half of its last bit
	const maxDigits = 60
	prec := uint(FloatPrec + 96)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	ten := new(big.Float).SetPrec(prec).SetInt64(10)
	m := new(big.Float).SetPrec(prec).Abs(f)
	e10 := int(math.Floor(float64(e-1) * math.Log10(2)))

	// Scale in two steps so that no power of ten leaves the exponent range
	m.Mul(m, powTen(-e10/2, prec))
	m.Mul(m, powTen(-(e10 - e10/2), prec))
	for m.Cmp(ten) >= 0 {
		m.Quo(m, ten)
		e10++
	}
	for m.Cmp(one) < 0 {
		m.Mul(m, ten)
		e10--
	}

	sign := ""
	if f.Sign() < 0 {
		sign = "-"
	}
	var text string
	for n := 1; n <= maxDigits; n++ {
		digits, exp := m.Text('f', n-1), e10
		if strings.HasPrefix(digits, "10") {
			digits, exp = "1", exp+1
		}
		if strings.Contains(digits, ".") {
			digits = strings.TrimRight(strings.TrimRight(digits, "0"), ".")
		}
		text = fmt.Sprintf("%v%ve%+03d", sign, digits, exp)
		if g, ok := newFloat().SetString(text); ok && g.Cmp(f) == 0 {
			break
		}
	}
	return text
}

// powTen returns 10^n with the given precision.
func powTen(n int, prec uint) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	z := new(big.Float).SetPrec(prec).SetInt64(1)
	b := new(big.Float).SetPrec(prec).SetInt64(10)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		if n > 1 {
			b.Mul(b, b)
		}
	}
	if neg {
		z.Quo(new(big.Float).SetPrec(prec).SetInt64(1), z)
	}
	return z
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description   |
//	| ------ | ------- | ------------- |
//	| %s, %v | 5.678   | Number        |
//	| %q     | "5.678" | Quoted number |
//	| %f     | 5.678   | Number        |
//
// The '-', '+', ' ', '0' format flags can be used with all verbs.
// Precision is only supported for the %f verb.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x Float) Format(state fmt.State, verb rune) {
	abs := new(big.Float).Abs(x.big())
	var digits string
	switch p, ok := state.Precision(); {
	case abs.IsInf():
		digits = "Inf"
	case ok && (verb == 'f' || verb == 'F'):
		digits = abs.Text('f', p)
	default:
		digits = floatText(abs)
	}
	formatReal(state, verb, x.big().Signbit() && !x.IsZero(), digits, "precision.Float")
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseFloat].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (x *Float) UnmarshalText(text []byte) error {
	var err error
	*x, err = ParseFloat(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Float{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Float.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x Float) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON strings and JSON numbers are accepted.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (x *Float) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	return x.UnmarshalText(unquote(text))
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a JSON string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (x Float) MarshalJSON() ([]byte, error) {
	return []byte(`"` + x.String() + `"`), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (x *Float) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*x, err = ParseFloat(value)
	case []byte:
		*x, err = ParseFloat(string(value))
	case int64:
		*x = FloatFromInt(value)
	case float64:
		*x, err = NewFloat(value)
	case nil:
		err = fmt.Errorf("null values are not supported")
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Float{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Numbers are stored as text to keep every digit.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (x Float) Value() (driver.Value, error) {
	return x.String(), nil
}

func (Float) fromFloat64(f float64) Float {
	return MustNewFloat(f)
}

func (Float) parse(s string) (Float, error) {
	return ParseFloat(s)
}
