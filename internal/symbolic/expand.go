package symbolic

const maxExpandExp = 12

// Expand distributes products over sums and multiplies out small positive
// integer powers of sums, then reduces the result. Negative powers of sums
// are kept as factors.
func Expand(e Expr) Expr {
	cur := Reduce(e)
	for i := 0; i < maxPasses; i++ {
		next := Reduce(expand(cur))
		if Identical(next, cur) {
			return next
		}
		cur = next
	}
	return cur
}

func expand(e Expr) Expr {
	switch x := e.(type) {
	case Add:
		out := make([]Expr, len(x.terms))
		for i, t := range x.terms {
			out[i] = expand(t)
		}
		return Add{terms: out}
	case Mul:
		acc := []Expr{Int(1)}
		for _, f := range x.factors {
			acc = distribute(acc, expand(f))
		}
		return Sum(acc...)
	case Pow:
		b := expand(x.base)
		if n, ok := x.exp.(Num); ok {
			if k, ok := n.Int64(); ok && k >= 2 && k <= maxExpandExp {
				if _, ok := b.(Add); ok {
					acc := []Expr{Int(1)}
					for i := int64(0); i < k; i++ {
						acc = distribute(acc, b)
					}
					return Sum(acc...)
				}
			}
		}
		return Pow{base: b, exp: expand(x.exp)}
	case Func:
		return Func{name: x.name, arg: expand(x.arg)}
	}
	return e
}

// distribute multiplies every accumulated term by f, splitting f when it
// is a sum. Intermediate results are reduced to keep the term count small.
func distribute(acc []Expr, f Expr) []Expr {
	rhs := []Expr{f}
	if a, ok := f.(Add); ok {
		rhs = a.terms
	}
	out := make([]Expr, 0, len(acc)*len(rhs))
	for _, l := range acc {
		for _, r := range rhs {
			out = append(out, Mul{factors: []Expr{l, r}})
		}
	}
	if len(rhs) == 1 {
		return out
	}
	reduced := Reduce(Sum(out...))
	if a, ok := reduced.(Add); ok {
		return a.terms
	}
	return []Expr{reduced}
}
