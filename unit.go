package precision

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"
)

//go:generate go run scripts/unit/codegen.go

// Unit type represents a unit of length.
// The zero value is [Centimeter], the unit in which lengths are stored.
//
// Unit is implemented as an integer index into in-memory arrays that
// store the code, the name and the size of every unit in centimeters.
// This design ensures safe concurrency for multiple goroutines accessing
// the same Unit value.
//
// When persisting a unit, use the code returned by the [Unit.Code] method
// rather than the integer index, as the mapping between index and a
// particular unit may change in future versions.
type Unit uint8

var errInvalidUnit = errors.New("invalid unit")

// unitFactors holds the exact size of every unit in centimeters.
var unitFactors = func() [len(factorLookup)]*big.Rat {
	var rats [len(factorLookup)]*big.Rat
	for i, s := range factorLookup {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			panic(fmt.Sprintf("unit %v: invalid factor %q", codeLookup[i], s))
		}
		rats[i] = r
	}
	return rats
}()

// ParseUnit converts a string to a unit.
// The input string must be in one of the following formats:
//
//	ly
//	Light-Year
//	light-year
//
// ParseUnit returns an error if the string does not represent a known unit.
func ParseUnit(unit string) (Unit, error) {
	u, ok := unitLookup[unit]
	if !ok {
		return Centimeter, fmt.Errorf("%w %q", errInvalidUnit, unit)
	}
	return u, nil
}

// MustParseUnit is like [ParseUnit] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding units.
func MustParseUnit(unit string) Unit {
	u, err := ParseUnit(unit)
	if err != nil {
		panic(fmt.Sprintf("ParseUnit(%q) failed: %v", unit, err))
	}
	return u
}

// Code returns the symbol of the unit, such as "cm" or "ly".
// This method always returns a valid code.
func (u Unit) Code() string {
	return codeLookup[u]
}

// Name returns the English name of the unit.
func (u Unit) Name() string {
	return nameLookup[u]
}

// Factor returns the exact size of the unit in centimeters, as a decimal
// string.
func (u Unit) Factor() string {
	return factorLookup[u]
}

// String method implements the [fmt.Stringer] interface and returns
// the code of the unit.
// See also method [Unit.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (u Unit) String() string {
	return u.Code()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseUnit].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (u *Unit) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	var err error
	*u, err = ParseUnit(string(unquote(text)))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Centimeter, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the code of the unit.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (u Unit) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, len(u.Code())+2)
	text = append(text, '"')
	text = append(text, u.Code()...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseUnit].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (u *Unit) UnmarshalText(text []byte) error {
	var err error
	*u, err = ParseUnit(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Centimeter, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends the code of the unit.
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (u Unit) AppendText(text []byte) ([]byte, error) {
	return append(text, u.Code()...), nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// MarshalText always returns the code of the unit.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.Code()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (u *Unit) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*u, err = ParseUnit(value)
	case []byte:
		*u, err = ParseUnit(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Centimeter, NullUnit{}, Centimeter)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Centimeter, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (u Unit) Value() (driver.Value, error) {
	return u.Code(), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description |
//	| ---------- | ------- | ----------- |
//	| %c, %s, %v | ly      | Unit        |
//	| %q         | "ly"    | Quoted unit |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (u Unit) Format(state fmt.State, verb rune) {
	code := u.Code()

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + len(code) + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	buf = append(buf, code...)
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(precision.Unit="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// NullUnit represents a unit that can be null.
// Its zero value is null.
// NullUnit is not thread-safe.
type NullUnit struct {
	Unit  Unit
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Unit.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullUnit) Scan(value any) error {
	if value == nil {
		n.Unit = Centimeter
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Unit.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Unit.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullUnit) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Unit.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Unit.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullUnit) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Unit = Centimeter
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Unit.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Unit.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullUnit) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Unit.MarshalJSON()
}

// ParseLength converts a decimal amount expressed in the given unit to the
// nearest length in centimeters.
// The amount is rounded once, after the conversion, so small units keep
// their precision:
//
//	ParseLength[Standard]("0.2", "nm")
//
// See also constructors [ParseUnit] and [ParseFixed].
func ParseLength[F Format](amount, unit string) (FixedReal[F], error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return FixedReal[F]{}, fmt.Errorf("parsing unit: %w", err)
	}
	d, err := scanDecimal(amount, maxDecimalExp)
	if err != nil {
		return FixedReal[F]{}, fmt.Errorf("parsing amount: %w", err)
	}
	num, den := d.rat()
	f := unitFactors[u]
	num.Mul(num, f.Num())
	num.Lsh(num, uint(layoutOf[F]().expBits))
	den.Mul(den, f.Denom())
	return newFixed[F](roundQuo(num, den)), nil
}

// MustParseLength is like [ParseLength] but panics if any of the strings
// cannot be parsed.
func MustParseLength[F Format](amount, unit string) FixedReal[F] {
	x, err := ParseLength[F](amount, unit)
	if err != nil {
		panic(fmt.Sprintf("ParseLength(%q, %q) failed: %v", amount, unit, err))
	}
	return x
}

// FromUnit interprets x as a length in unit u and returns the nearest
// length in centimeters.
func (x FixedReal[F]) FromUnit(u Unit) FixedReal[F] {
	f := unitFactors[u]
	m := new(big.Int).Mul(x.mantissa(), f.Num())
	return newFixed[F](roundQuo(m, f.Denom()))
}

// ToUnit interprets x as a length in centimeters and returns the nearest
// length in unit u.
func (x FixedReal[F]) ToUnit(u Unit) FixedReal[F] {
	f := unitFactors[u]
	m := new(big.Int).Mul(x.mantissa(), f.Denom())
	return newFixed[F](roundQuo(m, f.Num()))
}
