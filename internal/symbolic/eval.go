package symbolic

import (
	"fmt"
	"math"
	"strconv"
)

// DomainError is returned when an expression has no real value at the
// requested point: division by zero, logarithm of a non-positive number,
// even root of a negative number and so on.
type DomainError struct {
	Expr   string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Expr, e.Reason)
}

func domainErr(e Expr, reason string) error {
	return &DomainError{Expr: e.String(), Reason: reason}
}

// EvaluateNumeric computes e as a float64 with the given variable
// bindings. A positive precision rounds the result to that many
// significant digits.
func EvaluateNumeric(e Expr, bindings map[string]float64, precision int) (float64, error) {
	v, err := evalFloat(e, bindings)
	if err != nil {
		return 0, err
	}
	if precision > 0 {
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', precision, 64), 64)
	}
	return v, nil
}

func evalFloat(e Expr, env map[string]float64) (float64, error) {
	switch x := e.(type) {
	case Num:
		return x.Float64(), nil
	case Sym:
		if v, ok := env[x.name]; ok {
			return v, nil
		}
		switch x.name {
		case ConstPi:
			return math.Pi, nil
		case ConstE:
			return math.E, nil
		}
		return 0, domainErr(e, "unbound symbol")
	case Add:
		sum := 0.0
		for _, t := range x.terms {
			v, err := evalFloat(t, env)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	case Mul:
		prod := 1.0
		for _, f := range x.factors {
			v, err := evalFloat(f, env)
			if err != nil {
				return 0, err
			}
			prod *= v
		}
		return prod, nil
	case Pow:
		return evalPow(x, env)
	case Func:
		a, err := evalFloat(x.arg, env)
		if err != nil {
			return 0, err
		}
		var v float64
		switch x.name {
		case "sin":
			v = math.Sin(a)
		case "cos":
			v = math.Cos(a)
		case "tan":
			if math.Abs(math.Cos(a)) < 1e-12 {
				return 0, domainErr(e, "tangent undefined")
			}
			v = math.Tan(a)
		case "exp":
			v = math.Exp(a)
		case "ln":
			if a <= 0 {
				return 0, domainErr(e, "logarithm of non-positive value")
			}
			v = math.Log(a)
		case "abs":
			v = math.Abs(a)
		default:
			return 0, domainErr(e, "unknown function")
		}
		return finite(e, v)
	}
	return 0, fmt.Errorf("symbolic: unsupported node %T", e)
}

func evalPow(p Pow, env map[string]float64) (float64, error) {
	b, err := evalFloat(p.base, env)
	if err != nil {
		return 0, err
	}
	x, err := evalFloat(p.exp, env)
	if err != nil {
		return 0, err
	}
	if b == 0 && x < 0 {
		return 0, domainErr(p, "division by zero")
	}
	if b < 0 && x != math.Trunc(x) {
		// Odd roots of negative numbers are real.
		if n, ok := p.exp.(Num); ok {
			r := n.rat()
			if r.Denom().Bit(0) == 1 {
				v := math.Pow(-b, x)
				if r.Num().Bit(0) == 1 {
					v = -v
				}
				return finite(p, v)
			}
		}
		return 0, domainErr(p, "even root of negative value")
	}
	return finite(p, math.Pow(b, x))
}

func finite(e Expr, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domainErr(e, "undefined result")
	}
	return v, nil
}
