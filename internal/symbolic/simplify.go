package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

const (
	maxPasses   = 12
	maxExactExp = 64
	maxRootBits = 40
)

var ratOne = big.NewRat(1, 1)

type normOpts struct {
	collect bool
}

// Simplify returns the canonical form of e: nested sums and products are
// flattened, numeric constants folded, identity elements dropped, integer
// powers distributed over products and operands ordered deterministically.
// Like terms are not collected and nothing is distributed over sums, so
// 2*(x+2) and 2x+4 stay different.
func Simplify(e Expr) Expr { return fixpoint(e, normOpts{}) }

// Reduce is Simplify plus like-term collection, merging of powers with a
// common base and extraction of perfect powers from radicals.
func Reduce(e Expr) Expr { return fixpoint(e, normOpts{collect: true}) }

func fixpoint(e Expr, o normOpts) Expr {
	cur := e
	for i := 0; i < maxPasses; i++ {
		next := normalize(cur, o)
		if Identical(next, cur) {
			return next
		}
		cur = next
	}
	return cur
}

func normalize(e Expr, o normOpts) Expr {
	switch x := e.(type) {
	case Add:
		return normAdd(x.terms, o)
	case Mul:
		return normMul(x.factors, o)
	case Pow:
		return normPow(normalize(x.base, o), normalize(x.exp, o), o)
	case Func:
		return normFunc(x.name, normalize(x.arg, o))
	}
	return e
}

func normFunc(name string, arg Expr) Expr {
	if n, ok := arg.(Num); ok {
		switch name {
		case "abs":
			return Num{r: new(big.Rat).Abs(n.rat())}
		case "sin", "tan":
			if n.isZero() {
				return Int(0)
			}
		case "cos", "exp":
			if n.isZero() {
				return Int(1)
			}
		case "ln":
			if n.isOne() {
				return Int(0)
			}
		}
	}
	return Func{name: name, arg: arg}
}

func normAdd(in []Expr, o normOpts) Expr {
	sum := new(big.Rat)
	var terms []Expr
	push := func(t Expr) {
		if n, ok := t.(Num); ok {
			sum.Add(sum, n.rat())
			return
		}
		terms = append(terms, t)
	}
	for _, t := range in {
		nt := normalize(t, o)
		if a, ok := nt.(Add); ok {
			for _, s := range a.terms {
				push(s)
			}
			continue
		}
		push(nt)
	}
	if o.collect {
		terms = collectTerms(terms)
	}
	if sum.Sign() != 0 {
		terms = append(terms, Num{r: sum})
	}
	sort.SliceStable(terms, func(i, j int) bool { return termLess(terms[i], terms[j]) })
	switch len(terms) {
	case 0:
		return Int(0)
	case 1:
		return terms[0]
	}
	return Add{terms: terms}
}

func collectTerms(terms []Expr) []Expr {
	type group struct {
		coef *big.Rat
		mono []Expr
	}
	var order []string
	groups := make(map[string]*group)
	for _, t := range terms {
		c, mono := splitCoeff(t)
		key := monoKey(mono)
		g, ok := groups[key]
		if !ok {
			g = &group{coef: new(big.Rat), mono: mono}
			groups[key] = g
			order = append(order, key)
		}
		g.coef.Add(g.coef, c)
	}
	out := make([]Expr, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.coef.Sign() == 0 {
			continue
		}
		out = append(out, buildMul(g.coef, g.mono))
	}
	return out
}

func normMul(in []Expr, o normOpts) Expr {
	coef := big.NewRat(1, 1)
	var factors []Expr
	var push func(f Expr)
	push = func(f Expr) {
		switch v := f.(type) {
		case Num:
			coef.Mul(coef, v.rat())
		case Mul:
			for _, g := range v.factors {
				push(g)
			}
		default:
			factors = append(factors, f)
		}
	}
	for _, f := range in {
		push(normalize(f, o))
	}
	if coef.Sign() == 0 {
		return Int(0)
	}
	if o.collect {
		factors = collectFactors(factors, coef, o)
		if coef.Sign() == 0 {
			return Int(0)
		}
	}
	sort.SliceStable(factors, func(i, j int) bool { return factorLess(factors[i], factors[j]) })
	return buildMul(coef, factors)
}

// collectFactors merges factors sharing a base. Numeric results are folded
// into coef.
func collectFactors(factors []Expr, coef *big.Rat, o normOpts) []Expr {
	type group struct {
		base Expr
		exps []Expr
	}
	var order []string
	groups := make(map[string]*group)
	for _, f := range factors {
		b, x := splitPow(f)
		key := b.String()
		g, ok := groups[key]
		if !ok {
			g = &group{base: b}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, x)
	}
	var out []Expr
	for _, k := range order {
		g := groups[k]
		r := normPow(g.base, normAdd(g.exps, o), o)
		switch v := r.(type) {
		case Num:
			coef.Mul(coef, v.rat())
		case Mul:
			for _, h := range v.factors {
				if n, ok := h.(Num); ok {
					coef.Mul(coef, n.rat())
				} else {
					out = append(out, h)
				}
			}
		default:
			out = append(out, r)
		}
	}
	return out
}

func normPow(b, x Expr, o normOpts) Expr {
	xn, xNum := x.(Num)
	if xNum {
		if xn.isZero() {
			return Int(1)
		}
		if xn.isOne() {
			return b
		}
	}
	if bn, ok := b.(Num); ok {
		if bn.isOne() {
			return Int(1)
		}
		if xNum {
			if r, ok := numPow(bn, xn, o.collect); ok {
				return r
			}
		}
		return Pow{base: b, exp: x}
	}
	if !xNum || !xn.IsInt() {
		return Pow{base: b, exp: x}
	}
	switch v := b.(type) {
	case Pow:
		if inner, ok := v.exp.(Num); ok && (inner.IsInt() || o.collect) {
			return normPow(v.base, Num{r: new(big.Rat).Mul(inner.rat(), xn.rat())}, o)
		}
	case Mul:
		parts := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			parts[i] = normPow(f, x, o)
		}
		return normMul(parts, o)
	}
	return Pow{base: b, exp: x}
}

// numPow evaluates b^x exactly when the result is rational. With partial
// set, square (and higher) factors are pulled out of radicals, so 8^(1/2)
// becomes 2*2^(1/2).
func numPow(b, x Num, partial bool) (Expr, bool) {
	if x.IsInt() {
		n, ok := x.Int64()
		if !ok || n > maxExactExp || n < -maxExactExp {
			return nil, false
		}
		if b.isZero() && n < 0 {
			return nil, false
		}
		return Num{r: ratPow(b.rat(), n)}, true
	}

	xr := x.rat()
	if !xr.Num().IsInt64() || !xr.Denom().IsInt64() {
		return nil, false
	}
	p, q := xr.Num().Int64(), xr.Denom().Int64()
	if q > 8 || p > maxExactExp || p < -maxExactExp {
		return nil, false
	}
	if b.Sign() < 0 && q%2 == 0 {
		return nil, false
	}
	if b.isZero() {
		if p > 0 {
			return Int(0), true
		}
		return nil, false
	}

	raised := ratPow(b.rat(), p)
	neg := raised.Sign() < 0
	abs := new(big.Rat).Abs(raised)
	den := abs.Denom()
	// abs^(1/q) = (num*den^(q-1))^(1/q) / den
	m := new(big.Int).Mul(abs.Num(), new(big.Int).Exp(den, big.NewInt(q-1), nil))
	if m.BitLen() > maxRootBits {
		return nil, false
	}
	outer, inner := extractRoot(m.Int64(), q)
	if inner != 1 && !partial {
		return nil, false
	}
	coef := new(big.Rat).SetFrac(big.NewInt(outer), den)
	if neg {
		coef.Neg(coef)
	}
	if inner == 1 {
		return Num{r: coef}, true
	}
	surd := Pow{base: Int(inner), exp: Rat(1, q)}
	if coef.Cmp(ratOne) == 0 {
		return surd, true
	}
	return Mul{factors: []Expr{Num{r: coef}, surd}}, true
}

// extractRoot splits m into outer^q * inner with inner free of q-th powers.
func extractRoot(m, q int64) (outer, inner int64) {
	outer, inner = 1, 1
	for d := int64(2); ipow(d, q) <= m; d++ {
		cnt := int64(0)
		for m%d == 0 {
			m /= d
			cnt++
		}
		outer *= ipow(d, cnt/q)
		inner *= ipow(d, cnt%q)
	}
	inner *= m
	return outer, inner
}

func ipow(b, e int64) int64 {
	r := int64(1)
	for i := int64(0); i < e; i++ {
		r *= b
	}
	return r
}

func ratPow(r *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// buildMul assembles a normalized product from a coefficient and
// already-sorted non-numeric factors.
func buildMul(coef *big.Rat, factors []Expr) Expr {
	if coef.Sign() == 0 {
		return Int(0)
	}
	if len(factors) == 0 {
		return Num{r: new(big.Rat).Set(coef)}
	}
	isOne := coef.Cmp(ratOne) == 0
	if isOne && len(factors) == 1 {
		return factors[0]
	}
	out := make([]Expr, 0, len(factors)+1)
	if !isOne {
		out = append(out, Num{r: new(big.Rat).Set(coef)})
	}
	out = append(out, factors...)
	return Mul{factors: out}
}

// splitCoeff separates the numeric coefficient of a term from its
// remaining factors.
func splitCoeff(t Expr) (*big.Rat, []Expr) {
	switch v := t.(type) {
	case Num:
		return new(big.Rat).Set(v.rat()), nil
	case Mul:
		c := big.NewRat(1, 1)
		var rest []Expr
		for _, f := range v.factors {
			if n, ok := f.(Num); ok {
				c.Mul(c, n.rat())
			} else {
				rest = append(rest, f)
			}
		}
		return c, rest
	}
	return big.NewRat(1, 1), []Expr{t}
}

func splitPow(f Expr) (Expr, Expr) {
	if p, ok := f.(Pow); ok {
		return p.base, p.exp
	}
	return f, Int(1)
}

func monoKey(mono []Expr) string {
	parts := make([]string, len(mono))
	for i, f := range mono {
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

func factorRank(f Expr) int {
	b, _ := splitPow(f)
	switch v := b.(type) {
	case Num:
		return 1
	case Sym:
		if isConstantName(v.name) {
			return 2
		}
		return 3
	case Func:
		return 4
	case Add:
		return 5
	}
	return 6
}

func factorLess(a, b Expr) bool {
	ra, rb := factorRank(a), factorRank(b)
	if ra != rb {
		return ra < rb
	}
	ba, xa := splitPow(a)
	bb, xb := splitPow(b)
	if sa, sb := ba.String(), bb.String(); sa != sb {
		return sa < sb
	}
	na, okA := xa.(Num)
	nb, okB := xb.(Num)
	if okA && okB {
		return na.rat().Cmp(nb.rat()) > 0
	}
	return xa.String() < xb.String()
}

// symbolPowers maps each variable in a monomial to its numeric exponent.
func symbolPowers(t Expr) map[string]*big.Rat {
	_, mono := splitCoeff(t)
	out := make(map[string]*big.Rat)
	for _, f := range mono {
		b, x := splitPow(f)
		s, ok := b.(Sym)
		if !ok || isConstantName(s.name) {
			continue
		}
		n, ok := x.(Num)
		if !ok {
			continue
		}
		if cur, ok := out[s.name]; ok {
			cur.Add(cur, n.rat())
		} else {
			out[s.name] = new(big.Rat).Set(n.rat())
		}
	}
	return out
}

func totalDegree(p map[string]*big.Rat) *big.Rat {
	d := new(big.Rat)
	for _, v := range p {
		d.Add(d, v)
	}
	return d
}

// termLess orders sums by descending total degree, then lexicographically
// by variable powers, with the constant term last.
func termLess(a, b Expr) bool {
	_, an := a.(Num)
	_, bn := b.(Num)
	if an != bn {
		return bn
	}
	pa, pb := symbolPowers(a), symbolPowers(b)
	if c := totalDegree(pa).Cmp(totalDegree(pb)); c != 0 {
		return c > 0
	}
	names := make([]string, 0, len(pa)+len(pb))
	for k := range pa {
		names = append(names, k)
	}
	for k := range pb {
		if _, ok := pa[k]; !ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	zero := new(big.Rat)
	for _, n := range names {
		ea, eb := pa[n], pb[n]
		if ea == nil {
			ea = zero
		}
		if eb == nil {
			eb = zero
		}
		if c := ea.Cmp(eb); c != 0 {
			return c > 0
		}
	}
	_, ma := splitCoeff(a)
	_, mb := splitCoeff(b)
	if ka, kb := monoKey(ma), monoKey(mb); ka != kb {
		return ka < kb
	}
	return a.String() < b.String()
}
