package decimal

import (
	"fmt"
	"math/big"
	"strings"
)

// MaxScale is the largest number of fractional digits a Value can carry.
const MaxScale = 28

var (
	bigTen = big.NewInt(10)

	// 2^96 - 1
	maxUnscaled = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))
)

// Value is an immutable fixed-point decimal number.
// The zero Value represents 0 with scale 0.
type Value struct {
	negative bool
	scale    int
	unscaled *big.Int
}

// Parse converts a decimal literal into a Value.
// Surrounding whitespace is ignored. The literal may carry a leading sign and
// a single decimal point; exponents and grouping separators are rejected.
func Parse(text string) (Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty input", ErrInvalidSyntax)
	}

	var negative bool
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return Value{}, fmt.Errorf("%w: no digits in %q", ErrInvalidSyntax, text)
	}
	if strings.Contains(fracPart, ".") {
		return Value{}, fmt.Errorf("%w: multiple decimal points in %q", ErrInvalidSyntax, text)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return Value{}, fmt.Errorf("%w: unexpected character in %q", ErrInvalidSyntax, text)
	}
	full, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidSyntax, text)
	}

	// Excess fractional digits are rounded half to even, first down to
	// MaxScale and then further until the magnitude fits 96 bits. Every
	// candidate is rounded from the full literal, never from a rounded one.
	scale := len(fracPart)
	var unscaled *big.Int
	for drop := max(scale-MaxScale, 0); ; drop++ {
		if drop > scale {
			return Value{}, fmt.Errorf("%w: %q", ErrOverflow, text)
		}
		unscaled = roundHalfEven(full, drop)
		if unscaled.Cmp(maxUnscaled) <= 0 {
			scale -= drop
			break
		}
	}

	return Value{
		negative: negative && unscaled.Sign() != 0,
		scale:    scale,
		unscaled: unscaled,
	}, nil
}

// roundHalfEven divides x by 10^digits, rounding ties to the even quotient.
func roundHalfEven(x *big.Int, digits int) *big.Int {
	if digits == 0 {
		return new(big.Int).Set(x)
	}
	p := new(big.Int).Exp(bigTen, big.NewInt(int64(digits)), nil)
	q, r := new(big.Int).QuoRem(x, p, new(big.Int))

	switch r.Lsh(r, 1).Cmp(p) {
	case 1:
		q.Add(q, big.NewInt(1))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

// MustParse is like Parse but panics if the text cannot be parsed.
// Intended for constants and tests.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// NewFromInt64 returns the Value of n with scale 0.
func NewFromInt64(n int64) Value {
	u := big.NewInt(n)
	return Value{
		negative: n < 0,
		unscaled: u.Abs(u),
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (v Value) magnitude() *big.Int {
	if v.unscaled == nil {
		return new(big.Int)
	}
	return v.unscaled
}

// Negative reports whether the value is below zero.
func (v Value) Negative() bool {
	return v.negative
}

// Unscaled returns a copy of the unscaled magnitude.
func (v Value) Unscaled() *big.Int {
	return new(big.Int).Set(v.magnitude())
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	switch {
	case v.magnitude().Sign() == 0:
		return 0
	case v.negative:
		return -1
	default:
		return 1
	}
}

// TrailingZeros counts the zero digits at the end of the unscaled magnitude
// that lie within the fractional part. The result never exceeds the declared
// scale, so a zero magnitude yields the declared scale.
func (v Value) TrailingZeros() int {
	m := new(big.Int).Set(v.magnitude())
	rem := new(big.Int)

	n := 0
	for n < v.scale {
		q, r := new(big.Int).QuoRem(m, bigTen, rem)
		if r.Sign() != 0 {
			break
		}
		m = q
		n++
	}
	return n
}

// Scale returns the declared number of fractional digits, or the number of
// significant fractional digits when ignoreTrailingZeros is set.
func (v Value) Scale(ignoreTrailingZeros bool) int {
	if ignoreTrailingZeros {
		return v.scale - v.TrailingZeros()
	}
	return v.scale
}

// Cmp compares v and w numerically, ignoring scale.
// It returns -1 if v < w, 0 if v == w and +1 if v > w.
func (v Value) Cmp(w Value) int {
	return v.aligned(w.scale).Cmp(w.aligned(v.scale))
}

// CmpInt64 compares v with the integer n.
func (v Value) CmpInt64(n int64) int {
	return v.Cmp(NewFromInt64(n))
}

// aligned returns the signed unscaled value rescaled to max(v.scale, other).
func (v Value) aligned(other int) *big.Int {
	r := new(big.Int).Set(v.magnitude())
	if other > v.scale {
		exp := new(big.Int).Exp(bigTen, big.NewInt(int64(other-v.scale)), nil)
		r.Mul(r, exp)
	}
	if v.negative {
		r.Neg(r)
	}
	return r
}

// String renders v with its declared scale, e.g. "-12.340".
func (v Value) String() string {
	digits := v.magnitude().String()
	if v.scale > 0 {
		if pad := v.scale + 1 - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		digits = digits[:len(digits)-v.scale] + "." + digits[len(digits)-v.scale:]
	}
	if v.negative {
		return "-" + digits
	}
	return digits
}
