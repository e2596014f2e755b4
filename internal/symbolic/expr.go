// Package symbolic is a small computer-algebra kernel: immutable expression
// trees over exact rationals, deterministic normalization, numeric
// evaluation, parsing and printing.
//
// There are three normalization levels:
//
//   - Simplify folds constants, flattens, orders and drops identities. It
//     never collects like terms or distributes, so it preserves the form a
//     learner wrote.
//   - Reduce additionally collects like terms, merges powers of a common
//     base and extracts square factors from radicals.
//   - Expand additionally distributes products over sums.
package symbolic

import (
	"math/big"
)

// Expr is an immutable symbolic term.
type Expr interface {
	// String returns the canonical plain-text print form. Parse(e.String())
	// yields an expression identical to e after Simplify.
	String() string

	// LaTeX returns the typeset form for math mode.
	LaTeX() string

	isExpr()
}

// Num is an exact rational constant.
type Num struct{ r *big.Rat }

// Sym is a named variable. The names "pi" and "e" denote constants.
type Sym struct{ name string }

// Add is a sum of terms.
type Add struct{ terms []Expr }

// Mul is a product of factors.
type Mul struct{ factors []Expr }

// Pow is base raised to exponent. Square roots are Pow(x, 1/2).
type Pow struct{ base, exp Expr }

// Func is a named single-argument function application.
type Func struct {
	name string
	arg  Expr
}

func (Num) isExpr()  {}
func (Sym) isExpr()  {}
func (Add) isExpr()  {}
func (Mul) isExpr()  {}
func (Pow) isExpr()  {}
func (Func) isExpr() {}

// Known function names accepted by Apply and the parser.
var functions = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"exp": true, "ln": true, "abs": true,
}

// Constant symbol names.
const (
	ConstPi = "pi"
	ConstE  = "e"
)

func isConstantName(name string) bool {
	return name == ConstPi || name == ConstE
}

// Int returns the integer constant n.
func Int(n int64) Num { return Num{r: new(big.Rat).SetInt64(n)} }

// Rat returns the rational constant p/q. It panics if q is zero.
func Rat(p, q int64) Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return Num{r: new(big.Rat).SetFrac64(p, q)}
}

// NumFromRat returns a constant holding a copy of r.
func NumFromRat(r *big.Rat) Num { return Num{r: new(big.Rat).Set(r)} }

func (n Num) rat() *big.Rat {
	if n.r == nil {
		return new(big.Rat)
	}
	return n.r
}

// Rat returns a copy of the underlying rational.
func (n Num) Rat() *big.Rat { return new(big.Rat).Set(n.rat()) }

// Sign returns -1, 0 or +1.
func (n Num) Sign() int { return n.rat().Sign() }

// IsInt reports whether n is an integer.
func (n Num) IsInt() bool { return n.rat().IsInt() }

// Int64 returns n as an int64 when it is an integer that fits.
func (n Num) Int64() (int64, bool) {
	r := n.rat()
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	return r.Num().Int64(), true
}

// Float64 returns the nearest float64.
func (n Num) Float64() float64 {
	f, _ := n.rat().Float64()
	return f
}

func (n Num) isOne() bool    { return n.rat().Cmp(big.NewRat(1, 1)) == 0 }
func (n Num) isZero() bool   { return n.rat().Sign() == 0 }
func (n Num) isNegOne() bool { return n.rat().Cmp(big.NewRat(-1, 1)) == 0 }

// Symbol returns the variable with the given name.
func Symbol(name string) Sym { return Sym{name: name} }

// Name returns the symbol name.
func (s Sym) Name() string { return s.name }

// Pi returns the constant π.
func Pi() Sym { return Sym{name: ConstPi} }

// Sum returns the unsimplified sum of terms.
func Sum(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return Int(0)
	case 1:
		return terms[0]
	}
	return Add{terms: append([]Expr(nil), terms...)}
}

// Product returns the unsimplified product of factors.
func Product(factors ...Expr) Expr {
	switch len(factors) {
	case 0:
		return Int(1)
	case 1:
		return factors[0]
	}
	return Mul{factors: append([]Expr(nil), factors...)}
}

// Power returns base^exp.
func Power(base, exp Expr) Expr { return Pow{base: base, exp: exp} }

// Neg returns -e.
func Neg(e Expr) Expr { return Product(Int(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return Sum(a, Neg(b)) }

// Quo returns a / b.
func Quo(a, b Expr) Expr { return Product(a, Power(b, Int(-1))) }

// Sqrt returns the principal square root of e.
func Sqrt(e Expr) Expr { return Power(e, Rat(1, 2)) }

// Apply returns the named function applied to arg. ok is false for
// unknown function names.
func Apply(name string, arg Expr) (Expr, bool) {
	if !functions[name] {
		return nil, false
	}
	return Func{name: name, arg: arg}, true
}

// Terms returns a copy of the summands.
func (a Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// Factors returns a copy of the factors.
func (m Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// Base returns the base of the power.
func (p Pow) Base() Expr { return p.base }

// Exp returns the exponent of the power.
func (p Pow) Exp() Expr { return p.exp }

// Name returns the function name.
func (f Func) Name() string { return f.name }

// Arg returns the function argument.
func (f Func) Arg() Expr { return f.arg }

// Identical reports structural equality without any normalization.
func Identical(a, b Expr) bool {
	switch x := a.(type) {
	case Num:
		y, ok := b.(Num)
		return ok && x.rat().Cmp(y.rat()) == 0
	case Sym:
		y, ok := b.(Sym)
		return ok && x.name == y.name
	case Add:
		y, ok := b.(Add)
		return ok && identicalSlices(x.terms, y.terms)
	case Mul:
		y, ok := b.(Mul)
		return ok && identicalSlices(x.factors, y.factors)
	case Pow:
		y, ok := b.(Pow)
		return ok && Identical(x.base, y.base) && Identical(x.exp, y.exp)
	case Func:
		y, ok := b.(Func)
		return ok && x.name == y.name && Identical(x.arg, y.arg)
	}
	return false
}

func identicalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Identical(a[i], b[i]) {
			return false
		}
	}
	return true
}
