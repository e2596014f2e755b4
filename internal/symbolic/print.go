package symbolic

import (
	"math/big"
	"strings"
)

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

var ratHalf = big.NewRat(1, 2)

func prec(e Expr) int {
	switch x := e.(type) {
	case Num:
		if x.Sign() < 0 {
			return precAdd
		}
		if !x.IsInt() {
			return precMul
		}
		return precAtom
	case Add:
		return precAdd
	case Mul:
		c, _ := splitCoeff(x)
		if c.Sign() < 0 {
			return precAdd
		}
		return precMul
	case Pow:
		if n, ok := x.exp.(Num); ok {
			if n.Sign() < 0 {
				return precMul
			}
			if n.rat().Cmp(ratHalf) == 0 {
				return precAtom
			}
		}
		return precPow
	}
	return precAtom
}

func wrap(e Expr, min int) string {
	if prec(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func wrapTeX(e Expr, min int) string {
	if prec(e) < min {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}

// splitSign reports whether a term prints with a leading minus and returns
// its absolute form.
func splitSign(t Expr) (bool, Expr) {
	switch v := t.(type) {
	case Num:
		if v.Sign() < 0 {
			return true, Num{r: new(big.Rat).Neg(v.rat())}
		}
	case Mul:
		c, rest := splitCoeff(v)
		if c.Sign() < 0 {
			return true, buildMul(c.Neg(c), rest)
		}
	}
	return false, t
}

// fraction splits a product into its numerator and denominator parts.
func fraction(m Mul) (neg bool, coefNum, coefDen *big.Int, num, den []Expr) {
	c, rest := splitCoeff(m)
	neg = c.Sign() < 0
	c.Abs(c)
	coefNum, coefDen = c.Num(), c.Denom()
	for _, f := range rest {
		if p, ok := f.(Pow); ok {
			if n, ok := p.exp.(Num); ok && n.Sign() < 0 {
				pos := new(big.Rat).Neg(n.rat())
				if pos.Cmp(ratOne) == 0 {
					den = append(den, p.base)
				} else {
					den = append(den, Pow{base: p.base, exp: Num{r: pos}})
				}
				continue
			}
		}
		num = append(num, f)
	}
	return neg, coefNum, coefDen, num, den
}

func juxtaposable(f Expr) bool {
	b, _ := splitPow(f)
	switch b.(type) {
	case Sym, Add:
		return true
	}
	return false
}

func (n Num) String() string { return n.rat().RatString() }

func (s Sym) String() string { return s.name }

func (a Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, abs := splitSign(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
			sb.WriteString(wrap(abs, precMul))
		case i == 0:
			sb.WriteString(t.String())
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(wrap(abs, precMul))
		default:
			sb.WriteString(" + ")
			sb.WriteString(wrap(t, precMul))
		}
	}
	return sb.String()
}

func (m Mul) String() string {
	neg, cn, cd, num, den := fraction(m)
	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	one := cn.IsInt64() && cn.Int64() == 1
	switch {
	case len(num) == 0:
		sb.WriteString(cn.String())
	case one:
		sb.WriteString(joinFactors(num))
	case juxtaposable(num[0]):
		sb.WriteString(cn.String())
		sb.WriteString(joinFactors(num))
	default:
		sb.WriteString(cn.String())
		sb.WriteString("*")
		sb.WriteString(joinFactors(num))
	}
	if !(cd.IsInt64() && cd.Int64() == 1) {
		den = append([]Expr{Num{r: new(big.Rat).SetInt(cd)}}, den...)
	}
	switch len(den) {
	case 0:
	case 1:
		sb.WriteString("/")
		sb.WriteString(wrap(den[0], precPow))
	default:
		sb.WriteString("/(")
		sb.WriteString(joinFactors(den))
		sb.WriteString(")")
	}
	return sb.String()
}

func joinFactors(fs []Expr) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = wrap(f, precMul)
	}
	return strings.Join(parts, "*")
}

func (p Pow) String() string {
	if n, ok := p.exp.(Num); ok {
		if n.Sign() < 0 {
			pos := new(big.Rat).Neg(n.rat())
			var d Expr = Pow{base: p.base, exp: Num{r: pos}}
			if pos.Cmp(ratOne) == 0 {
				d = p.base
			}
			return "1/" + wrap(d, precPow)
		}
		if n.rat().Cmp(ratHalf) == 0 {
			return "sqrt(" + p.base.String() + ")"
		}
	}
	exp := p.exp.String()
	if prec(p.exp) < precAtom {
		exp = "(" + exp + ")"
	}
	return wrap(p.base, precAtom) + "^" + exp
}

func (f Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (n Num) LaTeX() string {
	r := n.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	sign := ""
	if r.Sign() < 0 {
		sign = "-"
	}
	abs := new(big.Rat).Abs(r)
	return sign + `\frac{` + abs.Num().String() + `}{` + abs.Denom().String() + `}`
}

func (s Sym) LaTeX() string {
	if s.name == ConstPi {
		return `\pi`
	}
	return s.name
}

func (a Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, abs := splitSign(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
			sb.WriteString(wrapTeX(abs, precMul))
		case i == 0:
			sb.WriteString(t.LaTeX())
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(wrapTeX(abs, precMul))
		default:
			sb.WriteString(" + ")
			sb.WriteString(wrapTeX(t, precMul))
		}
	}
	return sb.String()
}

func (m Mul) LaTeX() string {
	neg, cn, cd, num, den := fraction(m)
	sign := ""
	if neg {
		sign = "-"
	}
	numTeX := joinTeX(cn, num)
	if len(den) == 0 && cd.IsInt64() && cd.Int64() == 1 {
		return sign + numTeX
	}
	denTeX := joinTeX(cd, den)
	return sign + `\frac{` + numTeX + `}{` + denTeX + `}`
}

func joinTeX(coef *big.Int, fs []Expr) string {
	var sb strings.Builder
	if !(coef.IsInt64() && coef.Int64() == 1) || len(fs) == 0 {
		sb.WriteString(coef.String())
	}
	for _, f := range fs {
		s := wrapTeX(f, precMul)
		if sb.Len() > 0 && s != "" && (s[0] >= '0' && s[0] <= '9') {
			sb.WriteString(` \cdot `)
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (p Pow) LaTeX() string {
	if n, ok := p.exp.(Num); ok {
		if n.Sign() < 0 {
			pos := new(big.Rat).Neg(n.rat())
			var d Expr = Pow{base: p.base, exp: Num{r: pos}}
			if pos.Cmp(ratOne) == 0 {
				d = p.base
			}
			return `\frac{1}{` + d.LaTeX() + `}`
		}
		r := n.rat()
		if r.Num().IsInt64() && r.Num().Int64() == 1 && !r.IsInt() {
			if r.Cmp(ratHalf) == 0 {
				return `\sqrt{` + p.base.LaTeX() + `}`
			}
			return `\sqrt[` + r.Denom().String() + `]{` + p.base.LaTeX() + `}`
		}
	}
	return wrapTeX(p.base, precAtom) + "^{" + p.exp.LaTeX() + "}"
}

func (f Func) LaTeX() string {
	arg := f.arg.LaTeX()
	switch f.name {
	case "abs":
		return `\left|` + arg + `\right|`
	case "exp":
		return `e^{` + arg + `}`
	}
	return `\` + f.name + `\left(` + arg + `\right)`
}
