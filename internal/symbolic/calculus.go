package symbolic

import (
	"errors"
	"math/big"
	"sort"
)

// ErrNotPolynomial is returned when an expression is not a polynomial with
// rational coefficients in the requested variable.
var ErrNotPolynomial = errors.New("not a polynomial")

// FreeSymbols returns the sorted variable names occurring in e. The
// constants pi and e are excluded.
func FreeSymbols(e Expr) []string {
	seen := make(map[string]bool)
	walk(e, func(n Expr) {
		if s, ok := n.(Sym); ok && !isConstantName(s.name) {
			seen[s.name] = true
		}
	})
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func walk(e Expr, fn func(Expr)) {
	fn(e)
	switch x := e.(type) {
	case Add:
		for _, t := range x.terms {
			walk(t, fn)
		}
	case Mul:
		for _, f := range x.factors {
			walk(f, fn)
		}
	case Pow:
		walk(x.base, fn)
		walk(x.exp, fn)
	case Func:
		walk(x.arg, fn)
	}
}

func freeOf(e Expr, x string) bool {
	found := false
	walk(e, func(n Expr) {
		if s, ok := n.(Sym); ok && s.name == x {
			found = true
		}
	})
	return !found
}

// Substitute replaces every occurrence of the named symbol with value. The
// result is not simplified.
func Substitute(e Expr, name string, value Expr) Expr {
	return SubstituteAll(e, map[string]Expr{name: value})
}

// SubstituteAll replaces symbols according to values.
func SubstituteAll(e Expr, values map[string]Expr) Expr {
	switch x := e.(type) {
	case Sym:
		if v, ok := values[x.name]; ok {
			return v
		}
		return x
	case Add:
		out := make([]Expr, len(x.terms))
		for i, t := range x.terms {
			out[i] = SubstituteAll(t, values)
		}
		return Add{terms: out}
	case Mul:
		out := make([]Expr, len(x.factors))
		for i, f := range x.factors {
			out[i] = SubstituteAll(f, values)
		}
		return Mul{factors: out}
	case Pow:
		return Pow{base: SubstituteAll(x.base, values), exp: SubstituteAll(x.exp, values)}
	case Func:
		return Func{name: x.name, arg: SubstituteAll(x.arg, values)}
	}
	return e
}

// Differentiate returns the reduced derivative of e with respect to x.
func Differentiate(e Expr, x string) Expr {
	return Reduce(diff(e, x))
}

func diff(e Expr, x string) Expr {
	if freeOf(e, x) {
		return Int(0)
	}
	switch v := e.(type) {
	case Sym:
		return Int(1)
	case Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = diff(t, x)
		}
		return Sum(out...)
	case Mul:
		terms := make([]Expr, 0, len(v.factors))
		for i := range v.factors {
			fs := make([]Expr, len(v.factors))
			copy(fs, v.factors)
			fs[i] = diff(v.factors[i], x)
			terms = append(terms, Product(fs...))
		}
		return Sum(terms...)
	case Pow:
		if freeOf(v.exp, x) {
			return Product(v.exp, Power(v.base, Sum(v.exp, Int(-1))), diff(v.base, x))
		}
		if freeOf(v.base, x) {
			return Product(v, Func{name: "ln", arg: v.base}, diff(v.exp, x))
		}
		// d(b^g) = b^g * (g' ln b + g b'/b)
		return Product(v, Sum(
			Product(diff(v.exp, x), Func{name: "ln", arg: v.base}),
			Product(v.exp, diff(v.base, x), Power(v.base, Int(-1))),
		))
	case Func:
		du := diff(v.arg, x)
		switch v.name {
		case "sin":
			return Product(Func{name: "cos", arg: v.arg}, du)
		case "cos":
			return Product(Int(-1), Func{name: "sin", arg: v.arg}, du)
		case "tan":
			return Product(Power(Func{name: "cos", arg: v.arg}, Int(-2)), du)
		case "exp":
			return Product(v, du)
		case "ln":
			return Product(du, Power(v.arg, Int(-1)))
		case "abs":
			return Product(v, Power(v.arg, Int(-1)), du)
		}
	}
	return Int(0)
}

// PolyCoeffs returns the coefficients of e as a polynomial in x, keyed by
// degree. Terms with other symbols or non-integer powers yield
// ErrNotPolynomial.
func PolyCoeffs(e Expr, x string) (map[int]*big.Rat, error) {
	ex := Expand(e)
	terms := []Expr{ex}
	if a, ok := ex.(Add); ok {
		terms = a.terms
	}
	out := make(map[int]*big.Rat)
	for _, t := range terms {
		c, mono := splitCoeff(t)
		k := 0
		switch len(mono) {
		case 0:
		case 1:
			d, ok := monomialDegree(mono[0], x)
			if !ok {
				return nil, ErrNotPolynomial
			}
			k = d
		default:
			return nil, ErrNotPolynomial
		}
		if cur, ok := out[k]; ok {
			cur.Add(cur, c)
		} else {
			out[k] = c
		}
	}
	for k, c := range out {
		if c.Sign() == 0 {
			delete(out, k)
		}
	}
	return out, nil
}

func monomialDegree(f Expr, x string) (int, bool) {
	switch v := f.(type) {
	case Sym:
		return 1, v.name == x
	case Pow:
		s, ok := v.base.(Sym)
		if !ok || s.name != x {
			return 0, false
		}
		n, ok := v.exp.(Num)
		if !ok {
			return 0, false
		}
		k, ok := n.Int64()
		if !ok || k < 0 || k > 1<<16 {
			return 0, false
		}
		return int(k), true
	}
	return 0, false
}

// Degree returns the highest degree with a non-zero coefficient, or -1 for
// the zero polynomial.
func Degree(coeffs map[int]*big.Rat) int {
	d := -1
	for k, c := range coeffs {
		if c.Sign() != 0 && k > d {
			d = k
		}
	}
	return d
}

// Polynomial builds the reduced polynomial in x with integer coefficients
// given from the highest degree down to the constant term.
func Polynomial(x string, coeffs ...int64) Expr {
	terms := make([]Expr, 0, len(coeffs))
	deg := len(coeffs) - 1
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		terms = append(terms, Product(Int(c), Power(Symbol(x), Int(int64(deg-i)))))
	}
	return Reduce(Sum(terms...))
}

// Antiderivative integrates a polynomial in x term by term with zero
// constant of integration.
func Antiderivative(e Expr, x string) (Expr, error) {
	coeffs, err := PolyCoeffs(e, x)
	if err != nil {
		return nil, err
	}
	terms := make([]Expr, 0, len(coeffs))
	for k, c := range coeffs {
		nc := new(big.Rat).Quo(c, big.NewRat(int64(k+1), 1))
		terms = append(terms, Product(Num{r: nc}, Power(Symbol(x), Int(int64(k+1)))))
	}
	return Reduce(Sum(terms...)), nil
}

// DefiniteIntegral returns the exact value of the integral of the
// polynomial e over [a, b].
func DefiniteIntegral(e Expr, x string, a, b Expr) (Expr, error) {
	F, err := Antiderivative(e, x)
	if err != nil {
		return nil, err
	}
	return Reduce(Minus(Substitute(F, x, b), Substitute(F, x, a))), nil
}
