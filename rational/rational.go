// Package rational implements the exact rational arithmetic Gossip's
// Number value uses. The original implementation this language was
// distilled from (original_source/core.py) backs every number with
// Python's fractions.Fraction; spec.md §9 asks a systems-language port to
// use "a big-integer-backed rational type". No example repo in the
// retrieved pack carries a rational/bignum library, so this wraps the
// standard library's math/big.Rat rather than hand-rolling int64
// numerator/denominator overflow checks — the one ambient concern in this
// module built on the standard library, justified in DESIGN.md.
package rational

import (
	"fmt"
	"math/big"
)

// Rational is an exact rational number in canonical form: denominator > 0,
// numerator and denominator coprime.
type Rational struct {
	r *big.Rat
}

// FromInt64 builds an integral Rational.
func FromInt64(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// New builds num/den in canonical form. Panics if den is zero, mirroring
// the standard library's own contract for big.Rat.
func New(num, den int64) Rational {
	if den == 0 {
		panic("rational: zero denominator")
	}
	return Rational{r: big.NewRat(num, den)}
}

// Parse parses a decimal literal such as "12" or "3.14" into an exact
// Rational (no floating-point rounding is involved).
func Parse(s string) (Rational, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, fmt.Errorf("rational: invalid literal %q", s)
	}
	return Rational{r: r}, nil
}

func (a Rational) bigRat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// IsIntegral reports whether the denominator is 1.
func (a Rational) IsIntegral() bool {
	return a.bigRat().IsInt()
}

// Int64 truncates toward zero. Only meaningful for values that fit in an
// int64.
func (a Rational) Int64() int64 {
	num := new(big.Int).Quo(a.bigRat().Num(), a.bigRat().Denom())
	return num.Int64()
}

// Floor rounds toward negative infinity, the "⌊L⌋" spec.md's Range uses.
// Only meaningful for values that fit in an int64.
func (a Rational) Floor() int64 {
	num, den := a.bigRat().Num(), a.bigRat().Denom()
	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Sign() != 0 && (num.Sign() < 0) != (den.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q.Int64()
}

func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.bigRat(), b.bigRat())}
}

func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.bigRat(), b.bigRat())}
}

func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.bigRat(), b.bigRat())}
}

// Div performs exact division. The caller must check for a zero divisor;
// Div panics on one, matching big.Rat's own contract.
func (a Rational) Div(b Rational) Rational {
	return Rational{r: new(big.Rat).Quo(a.bigRat(), b.bigRat())}
}

// IsZero reports whether the value is exactly zero.
func (a Rational) IsZero() bool {
	return a.bigRat().Sign() == 0
}

// Neg negates the value.
func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.bigRat())}
}

// Quot is the integer quotient; both operands must be integral.
func (a Rational) Quot(b Rational) Rational {
	ai := new(big.Int).Set(a.bigRat().Num())
	bi := new(big.Int).Set(b.bigRat().Num())
	q := new(big.Int).Quo(ai, bi)
	return Rational{r: new(big.Rat).SetInt(q)}
}

// Rem is the integer remainder; both operands must be integral.
func (a Rational) Rem(b Rational) Rational {
	ai := new(big.Int).Set(a.bigRat().Num())
	bi := new(big.Int).Set(b.bigRat().Num())
	m := new(big.Int).Rem(ai, bi)
	return Rational{r: new(big.Rat).SetInt(m)}
}

// Pow raises a to an integral, non-negative or negative exponent.
func (a Rational) Pow(exp Rational) Rational {
	n := exp.Int64()
	result := FromInt64(1)
	base := a
	neg := n < 0
	if neg {
		n = -n
	}
	for i := int64(0); i < n; i++ {
		result = result.Mul(base)
	}
	if neg {
		return FromInt64(1).Div(result)
	}
	return result
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Rational) Cmp(b Rational) int {
	return a.bigRat().Cmp(b.bigRat())
}

// Equal reports structural (value) equality.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

func (a Rational) String() string {
	if a.IsIntegral() {
		return a.bigRat().Num().String()
	}
	return a.bigRat().RatString()
}
