package precision

import (
	"database/sql/driver"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/govalues/decimal"
	"golang.org/x/exp/constraints"
)

// Format describes the layout of a fixed-point number.
// The value of a number is mantissa * 2^(-ExponentBits), and the mantissa is
// stored as a signed integer of MantissaBits + ExponentBits bits, rounded up
// to a whole number of 64-bit words.
//
// Format is implemented by zero-size marker types, so two layouts are two
// distinct Go types and cannot be mixed in arithmetic.
type Format interface {
	MantissaBits() int
	ExponentBits() int
}

// Standard is the default layout: a 102-bit mantissa and a 26-bit exponent,
// stored in 128 bits.
// Measured in centimeters, its quantum is about 0.149 nanometers and its
// largest value is about 40,000 light-years.
type Standard struct{}

func (Standard) MantissaBits() int { return 102 }
func (Standard) ExponentBits() int { return 26 }

// Fixed is a fixed-point number with the [Standard] layout.
type Fixed = FixedReal[Standard]

// FixedReal type represents a fixed-point real number with layout F.
// Its zero value corresponds to 0.
//
// Arithmetic is exact up to the storage width, and results that do not fit
// silently wrap around in two's complement, like native integers.
// Multiplication and division truncate towards zero.
//
// FixedReal is designed to be safe for concurrent use by multiple goroutines.
type FixedReal[F Format] struct {
	mant *big.Int // never modified after construction, nil means 0
}

// fixedLayout holds the constants derived from a [Format].
type fixedLayout struct {
	expBits int
	width   int      // storage width in bits
	scale   *big.Int // 2^expBits
	modulus *big.Int // 2^width
	sign    *big.Int // 2^(width-1)
	max     *big.Int // 2^(mantBits-1) - 1
	digits  int      // fractional digits needed to identify every mantissa
}

var layouts sync.Map // [2]int -> *fixedLayout

func layoutOf[F Format]() *fixedLayout {
	var f F
	key := [2]int{f.MantissaBits(), f.ExponentBits()}
	if l, ok := layouts.Load(key); ok {
		return l.(*fixedLayout)
	}
	l, _ := layouts.LoadOrStore(key, newFixedLayout(key[0], key[1]))
	return l.(*fixedLayout)
}

func newFixedLayout(mantBits, expBits int) *fixedLayout {
	if mantBits < 2 || expBits < 0 {
		panic(fmt.Sprintf("fixed-point layout (%v, %v) is not valid", mantBits, expBits))
	}
	width := (mantBits + expBits + 63) / 64 * 64
	l := &fixedLayout{
		expBits: expBits,
		width:   width,
		scale:   new(big.Int).Lsh(bigOne, uint(expBits)),
		modulus: new(big.Int).Lsh(bigOne, uint(width)),
		sign:    new(big.Int).Lsh(bigOne, uint(width-1)),
		max:     new(big.Int).Lsh(bigOne, uint(mantBits-1)),
	}
	l.max.Sub(l.max, bigOne)
	for p := big.NewInt(1); p.Cmp(l.scale) < 0; p.Mul(p, bigTen) {
		l.digits++
	}
	return l
}

// wrap reduces m to the storage width in two's complement.
// It modifies and returns m.
func (l *fixedLayout) wrap(m *big.Int) *big.Int {
	if m.BitLen() < l.width {
		return m
	}
	m.Mod(m, l.modulus)
	if m.Cmp(l.sign) >= 0 {
		m.Sub(m, l.modulus)
	}
	return m
}

// shortest returns the shortest decimal text of abs * 2^(-expBits) that
// converts back to abs.
func (l *fixedLayout) shortest(abs *big.Int) string {
	whole, frac := new(big.Int).QuoRem(abs, l.scale, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}
	for d := 1; d <= l.digits; d++ {
		p := pow10(d)
		c := roundQuo(new(big.Int).Mul(frac, p), l.scale)
		back := roundQuo(new(big.Int).Mul(c, l.scale), p)
		if back.Cmp(frac) == 0 {
			s := c.String()
			return whole.String() + "." + strings.Repeat("0", d-len(s)) + s
		}
	}
	// unreachable, 10^digits >= 2^expBits
	return whole.String()
}

// fixed returns the decimal text of abs * 2^(-expBits) with exactly prec
// fractional digits.
func (l *fixedLayout) fixed(abs *big.Int, prec int) string {
	c := roundQuo(new(big.Int).Mul(abs, pow10(prec)), l.scale)
	s := c.String()
	if len(s) <= prec {
		s = strings.Repeat("0", prec-len(s)+1) + s
	}
	if prec == 0 {
		return s
	}
	return s[:len(s)-prec] + "." + s[len(s)-prec:]
}

// newFixed wraps m to the storage width of F and takes ownership of it.
func newFixed[F Format](m *big.Int) FixedReal[F] {
	return FixedReal[F]{mant: layoutOf[F]().wrap(m)}
}

// NewFixed returns a number with the given raw mantissa, that is
// mant * 2^(-ExponentBits).
// The mantissa is wrapped to the storage width.
// See also method [FixedReal.Mantissa].
func NewFixed[F Format](mant *big.Int) FixedReal[F] {
	return newFixed[F](new(big.Int).Set(mant))
}

// FixedFromInt converts an integer to a number.
// Integers that do not fit wrap around.
func FixedFromInt[F Format, T constraints.Integer](v T) FixedReal[F] {
	m := new(big.Int)
	if v < 0 {
		m.SetInt64(int64(v))
	} else {
		m.SetUint64(uint64(v))
	}
	return newFixed[F](m.Lsh(m, uint(layoutOf[F]().expBits)))
}

// FixedFromFloat64 converts a float to the nearest number, rounding half
// away from zero.
// See also method [FixedReal.Float64].
//
// FixedFromFloat64 returns an error if the float is a special value (NaN or Inf).
func FixedFromFloat64[F Format](f float64) (FixedReal[F], error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FixedReal[F]{}, fmt.Errorf("converting float: special value %v", f)
	}
	l := layoutOf[F]()
	t := new(big.Float).SetMantExp(new(big.Float).SetFloat64(f), l.expBits)
	return newFixed[F](roundFloat(t)), nil
}

// FixedFromFloat32 is like [FixedFromFloat64] for single-precision floats.
func FixedFromFloat32[F Format](f float32) (FixedReal[F], error) {
	return FixedFromFloat64[F](float64(f))
}

// FixedFromFloat converts an arbitrary-precision float to the nearest
// number, rounding half away from zero.
// See also method [FixedReal.Float].
//
// FixedFromFloat returns an error if the float is infinite.
func FixedFromFloat[F Format](x Float) (FixedReal[F], error) {
	if x.IsInf() {
		return FixedReal[F]{}, fmt.Errorf("converting %v: %w", x, errInfinite)
	}
	l := layoutOf[F]()
	t := new(big.Float).SetMantExp(x.big(), l.expBits)
	return newFixed[F](roundFloat(t)), nil
}

// FixedFromDecimal converts a decimal to the nearest number.
// See also method [FixedReal.Decimal].
func FixedFromDecimal[F Format](d decimal.Decimal) FixedReal[F] {
	return MustParseFixed[F](d.String())
}

// roundFloat rounds a finite float to the nearest integer, with ties
// rounded away from zero.
func roundFloat(t *big.Float) *big.Int {
	i, _ := t.Int(nil)
	frac := new(big.Float).Sub(t, new(big.Float).SetInt(i))
	frac.Abs(frac)
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		if t.Signbit() {
			i.Sub(i, bigOne)
		} else {
			i.Add(i, bigOne)
		}
	}
	return i
}

// ParseFixed converts a decimal string to the nearest number, rounding half
// away from zero.
// The string starts with an optional sign, digits with an optional decimal
// point and an optional exponent:
//
//	6
//	-0.25
//	1.5e-7
//
// Parsing stops at the first character that does not belong to the number,
// the rest of the string is ignored.
// ParseFixed returns an error if the string does not start with a number.
func ParseFixed[F Format](s string) (FixedReal[F], error) {
	d, err := scanDecimal(s, maxDecimalExp)
	if err != nil {
		return FixedReal[F]{}, fmt.Errorf("parsing fixed-point number: %w", err)
	}
	num, den := d.rat()
	num.Lsh(num, uint(layoutOf[F]().expBits))
	return newFixed[F](roundQuo(num, den)), nil
}

// MustParseFixed is like [ParseFixed] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding numbers.
func MustParseFixed[F Format](s string) FixedReal[F] {
	x, err := ParseFixed[F](s)
	if err != nil {
		panic(fmt.Sprintf("ParseFixed(%q) failed: %v", s, err))
	}
	return x
}

// MaxFixed returns the largest number of layout F, that is
// (2^(MantissaBits-1) - 1) * 2^(-ExponentBits).
func MaxFixed[F Format]() FixedReal[F] {
	return newFixed[F](new(big.Int).Set(layoutOf[F]().max))
}

// MinFixed returns the smallest positive number of layout F, that is one
// quantum 2^(-ExponentBits).
func MinFixed[F Format]() FixedReal[F] {
	return newFixed[F](big.NewInt(1))
}

func (x FixedReal[F]) mantissa() *big.Int {
	if x.mant == nil {
		return new(big.Int)
	}
	return x.mant
}

// Mantissa returns a copy of the raw mantissa of the number.
func (x FixedReal[F]) Mantissa() *big.Int {
	return new(big.Int).Set(x.mantissa())
}

// Float64 returns the nearest binary floating-point number.
// This conversion can lose data, as float64 has a smaller precision than
// most layouts.
func (x FixedReal[F]) Float64() float64 {
	f, _ := x.bigFloat().Float64()
	return f
}

// Float32 is like [FixedReal.Float64] for single-precision floats.
func (x FixedReal[F]) Float32() float32 {
	f, _ := x.bigFloat().Float32()
	return f
}

// bigFloat returns the exact value as a binary float.
func (x FixedReal[F]) bigFloat() *big.Float {
	f := new(big.Float).SetInt(x.mantissa())
	return f.SetMantExp(f, -layoutOf[F]().expBits)
}

// Float converts the number to an arbitrary-precision float.
// The conversion is exact unless the layout is wider than [FloatPrec].
func (x FixedReal[F]) Float() Float {
	return Float{v: newFloat().Set(x.bigFloat())}
}

// Decimal converts the number to the nearest decimal.
// Decimal returns an error if the integer part of the number has more
// than [decimal.MaxPrec] digits.
func (x FixedReal[F]) Decimal() (decimal.Decimal, error) {
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
func (x FixedReal[F]) Sign() int {
	return x.mantissa().Sign()
}

// IsZero returns true if x = 0.
func (x FixedReal[F]) IsZero() bool {
	return x.Sign() == 0
}

// IsNeg returns true if x < 0.
func (x FixedReal[F]) IsNeg() bool {
	return x.Sign() < 0
}

// IsPos returns true if x > 0.
func (x FixedReal[F]) IsPos() bool {
	return x.Sign() > 0
}

// Add returns the (possibly wrapped) sum x + y.
func (x FixedReal[F]) Add(y FixedReal[F]) FixedReal[F] {
	return newFixed[F](new(big.Int).Add(x.mantissa(), y.mantissa()))
}

// Sub returns the (possibly wrapped) difference x - y.
func (x FixedReal[F]) Sub(y FixedReal[F]) FixedReal[F] {
	return newFixed[F](new(big.Int).Sub(x.mantissa(), y.mantissa()))
}

// Mul returns the (possibly wrapped) product x * y, truncated towards zero.
func (x FixedReal[F]) Mul(y FixedReal[F]) FixedReal[F] {
	m := new(big.Int).Mul(x.mantissa(), y.mantissa())
	return newFixed[F](m.Quo(m, layoutOf[F]().scale))
}

// Quo returns the (possibly wrapped) quotient x / y, truncated towards zero.
// Quo panics if y = 0.
func (x FixedReal[F]) Quo(y FixedReal[F]) FixedReal[F] {
	m := new(big.Int).Lsh(x.mantissa(), uint(layoutOf[F]().expBits))
	return newFixed[F](m.Quo(m, y.mantissa()))
}

// Rem returns the remainder of x / y, which has the sign of x.
// Rem panics if y = 0.
func (x FixedReal[F]) Rem(y FixedReal[F]) FixedReal[F] {
	return newFixed[F](new(big.Int).Rem(x.mantissa(), y.mantissa()))
}

// Neg returns -x.
func (x FixedReal[F]) Neg() FixedReal[F] {
	return newFixed[F](new(big.Int).Neg(x.mantissa()))
}

// Abs returns |x|.
func (x FixedReal[F]) Abs() FixedReal[F] {
	return newFixed[F](new(big.Int).Abs(x.mantissa()))
}

// Sqrt returns the square root of x, truncated towards zero.
// Sqrt panics if x < 0.
func (x FixedReal[F]) Sqrt() FixedReal[F] {
	m := new(big.Int).Lsh(x.mantissa(), uint(layoutOf[F]().expBits))
	return newFixed[F](m.Sqrt(m))
}

// Log returns the natural logarithm of x.
// Log panics if x <= 0.
func (x FixedReal[F]) Log() FixedReal[F] {
	return mustFixedFromFloat[F]("Log", x, Log(x.Float()))
}

// Log2 returns the binary logarithm of x.
// Log2 panics if x <= 0.
func (x FixedReal[F]) Log2() FixedReal[F] {
	return mustFixedFromFloat[F]("Log2", x, Log2(x.Float()))
}

// Log10 returns the decimal logarithm of x.
// Log10 panics if x <= 0.
func (x FixedReal[F]) Log10() FixedReal[F] {
	return mustFixedFromFloat[F]("Log10", x, Log10(x.Float()))
}

func mustFixedFromFloat[F Format](op string, x FixedReal[F], f Float) FixedReal[F] {
	y, err := FixedFromFloat[F](f)
	if err != nil {
		panic(fmt.Sprintf("%v(%v) failed: %v", op, x, err))
	}
	return y
}

// Cmp compares numbers and returns:
//
//	-1 if x < y
//	 0 if x = y
//	+1 if x > y
func (x FixedReal[F]) Cmp(y FixedReal[F]) int {
	return x.mantissa().Cmp(y.mantissa())
}

// Equal returns true if x = y.
func (x FixedReal[F]) Equal(y FixedReal[F]) bool {
	return x.Cmp(y) == 0
}

// Less returns true if x < y.
func (x FixedReal[F]) Less(y FixedReal[F]) bool {
	return x.Cmp(y) < 0
}

// LessOrEqual returns true if x <= y.
func (x FixedReal[F]) LessOrEqual(y FixedReal[F]) bool {
	return x.Cmp(y) <= 0
}

// Greater returns true if x > y.
func (x FixedReal[F]) Greater(y FixedReal[F]) bool {
	return x.Cmp(y) > 0
}

// GreaterOrEqual returns true if x >= y.
func (x FixedReal[F]) GreaterOrEqual(y FixedReal[F]) bool {
	return x.Cmp(y) >= 0
}

// Min returns the smaller of x and y.
func (x FixedReal[F]) Min(y FixedReal[F]) FixedReal[F] {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func (x FixedReal[F]) Max(y FixedReal[F]) FixedReal[F] {
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
func (x FixedReal[F]) Clamp(min, max FixedReal[F]) FixedReal[F] {
	switch {
	case x.Cmp(min) < 0:
		return min
	case x.Cmp(max) > 0:
		return max
	}
	return x
}

// String implements the [fmt.Stringer] interface and returns the shortest
// decimal representation that converts back to the same number.
// The fractional part never has more digits than needed to distinguish two
// adjacent mantissas (8 for the [Standard] layout), and the decimal point is
// omitted for integers.
// See also constructor [ParseFixed] and method [FixedReal.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x FixedReal[F]) String() string {
	m := x.mantissa()
	s := layoutOf[F]().shortest(new(big.Int).Abs(m))
	if m.Sign() < 0 {
		return "-" + s
	}
	return s
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
func (x FixedReal[F]) Format(state fmt.State, verb rune) {
	l := layoutOf[F]()
	abs := new(big.Int).Abs(x.mantissa())
	var digits string
	if p, ok := state.Precision(); ok && (verb == 'f' || verb == 'F') {
		digits = l.fixed(abs, p)
	} else {
		digits = l.shortest(abs)
	}
	formatReal(state, verb, x.IsNeg(), digits, "precision.FixedReal")
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseFixed].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (x *FixedReal[F]) UnmarshalText(text []byte) error {
	var err error
	*x, err = ParseFixed[F](string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling fixed-point number: %w", err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [FixedReal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x FixedReal[F]) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON strings and JSON numbers are accepted.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (x *FixedReal[F]) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	return x.UnmarshalText(unquote(text))
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a JSON string, as JSON numbers are usually
// decoded as float64 and would lose precision.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (x FixedReal[F]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + x.String() + `"`), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (x *FixedReal[F]) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*x, err = ParseFixed[F](value)
	case []byte:
		*x, err = ParseFixed[F](string(value))
	case int64:
		*x = FixedFromInt[F](value)
	case float64:
		*x, err = FixedFromFloat64[F](value)
	case nil:
		err = fmt.Errorf("null values are not supported")
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to fixed-point number: %w", value, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Numbers are stored as text to keep every digit.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (x FixedReal[F]) Value() (driver.Value, error) {
	return x.String(), nil
}

func (FixedReal[F]) fromFloat64(f float64) FixedReal[F] {
	x, err := FixedFromFloat64[F](f)
	if err != nil {
		panic(fmt.Sprintf("FixedFromFloat64(%v) failed: %v", f, err))
	}
	return x
}

func (FixedReal[F]) parse(s string) (FixedReal[F], error) {
	return ParseFixed[F](s)
}
