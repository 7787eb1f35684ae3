package precision

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
)

var (
	errInvalidReal      = errors.New("invalid real number")
	errInvalidComposite = errors.New("invalid composite value")
)

// Bounds of the exponent accepted in decimal text.
// A short input must not be able to request an arbitrarily large power of ten.
const (
	maxDecimalExp = 10000 // far beyond any fixed-point layout
	// maxFloatDecimalExp covers the exponent range of big.Float,
	// 2^±(2^31) is about 10^±646456993.
	maxFloatDecimalExp = 646456994
)

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// decimalText is a decimal number recognized at the start of a string.
type decimalText struct {
	neg    bool
	digits string // integer and fractional digits without the point
	scale  int    // value = digits / 10^scale
	text   string // recognized prefix of the input
}

// scanDecimal recognizes the longest decimal number at the start of s:
//
//	[+|-]digits[.digits][e[+|-]digits]
//
// Everything after the recognized prefix is ignored.
// scanDecimal returns an error if no digit was recognized or if the exponent
// is larger than maxExp in magnitude.
func scanDecimal(s string, maxExp int) (decimalText, error) {
	var d decimalText
	pos := 0

	// Sign
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		d.neg = s[pos] == '-'
		pos++
	}

	// Integer and fractional digits
	var buf strings.Builder
	frac := 0
	for pos < len(s) && isDigit(s[pos]) {
		buf.WriteByte(s[pos])
		pos++
	}
	if pos < len(s) && s[pos] == '.' {
		pos++
		for pos < len(s) && isDigit(s[pos]) {
			buf.WriteByte(s[pos])
			pos++
			frac++
		}
	}
	if buf.Len() == 0 {
		return decimalText{}, fmt.Errorf("%w: no digits in %q", errInvalidReal, s)
	}

	// Exponent, only consumed when followed by at least one digit
	exp := 0
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		p := pos + 1
		eneg := false
		if p < len(s) && (s[p] == '+' || s[p] == '-') {
			eneg = s[p] == '-'
			p++
		}
		start := p
		for p < len(s) && isDigit(s[p]) {
			exp = exp*10 + int(s[p]-'0')
			if exp > maxExp {
				return decimalText{}, fmt.Errorf("%w: exponent of %q is out of range", errInvalidReal, s)
			}
			p++
		}
		switch {
		case p == start:
			exp = 0
		case eneg:
			exp = -exp
			pos = p
		default:
			pos = p
		}
	}

	d.digits = buf.String()
	d.scale = frac - exp
	d.text = s[:pos]
	return d, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// rat returns the value as num / den with den > 0.
func (d decimalText) rat() (num, den *big.Int) {
	num, _ = new(big.Int).SetString(d.digits, 10)
	den = big.NewInt(1)
	switch {
	case d.scale > 0:
		den = pow10(d.scale)
	case d.scale < 0:
		num.Mul(num, pow10(-d.scale))
	}
	if d.neg {
		num.Neg(num)
	}
	return num, den
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// roundQuo returns a / b rounded to the nearest integer, with ties rounded
// away from zero. The divisor must be positive.
func roundQuo(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	r.Abs(r)
	r.Lsh(r, 1)
	if r.Cmp(b) >= 0 {
		if a.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q
}

// parseFields splits a composite text such as "(X=1,Y=2,Z=3)" into values
// ordered like keys.
// Parentheses are optional, keys are matched case-insensitively and can
// appear in any order, but every key must appear exactly once.
func parseFields(s string, keys ...string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	if len(parts) != len(keys) {
		return nil, fmt.Errorf("%w: want %d fields, got %d", errInvalidComposite, len(keys), len(parts))
	}
	vals := make([]string, len(keys))
	seen := make([]bool, len(keys))
	for _, p := range parts {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%w: missing '=' in %q", errInvalidComposite, p)
		}
		k = strings.TrimSpace(k)
		i := slices.IndexFunc(keys, func(key string) bool { return strings.EqualFold(key, k) })
		switch {
		case i < 0:
			return nil, fmt.Errorf("%w: unknown field %q", errInvalidComposite, k)
		case seen[i]:
			return nil, fmt.Errorf("%w: duplicate field %q", errInvalidComposite, k)
		}
		seen[i] = true
		vals[i] = strings.TrimSpace(v)
	}
	return vals, nil
}

// formatFields is the inverse of parseFields.
func formatFields(keys []string, vals ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(vals[i])
	}
	b.WriteByte(')')
	return b.String()
}

// formatReal writes an unsigned decimal text with its sign, padding and
// quotes according to the verb and flags of state.
// It is shared by the fmt.Formatter implementations of the scalar types.
func formatReal(state fmt.State, verb rune, neg bool, digits, typ string) {
	// Arithmetic sign
	rsign := 0
	if neg || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + rsign + len(digits) + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)

	// Leading spaces
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}

	// Opening quote
	if lquote > 0 {
		buf = append(buf, '"')
	}

	// Arithmetic sign
	if rsign > 0 {
		switch {
		case neg:
			buf = append(buf, '-')
		case state.Flag(' '):
			buf = append(buf, ' ')
		default:
			buf = append(buf, '+')
		}
	}

	// Leading zeros
	for i := 0; i < lzeros; i++ {
		buf = append(buf, '0')
	}

	// Digits
	buf = append(buf, digits...)

	// Closing quote
	if tquote > 0 {
		buf = append(buf, '"')
	}

	// Trailing spaces
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(" + typ + "="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// unquote strips the double quotes of a JSON string.
func unquote(text []byte) []byte {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
