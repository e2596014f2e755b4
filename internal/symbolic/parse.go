package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// ParseError describes input that is not a well-formed expression.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var inputReplacer = strings.NewReplacer(
	"−", "-",
	"–", "-",
	"×", "*",
	"·", "*",
	"⋅", "*",
	"÷", "/",
	"**", "^",
	"√", "sqrt ",
	"π", "pi",
	"²", "^2",
	"³", "^3",
)

// Parse reads an expression in the usual infix notation. Implicit
// multiplication is accepted between a factor and a following variable,
// function or parenthesis ("2x", "3(x+1)", "x sin(x)"). Single letters are
// variables; multi-letter identifiers must be a known function or "pi".
func Parse(input string) (Expr, error) {
	src := inputReplacer.Replace(strings.TrimSpace(input))
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf("empty expression")
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf("unexpected %q", t.text)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for literals in
// code and tests.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

func tokenize(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			dot := false
			for i < len(rs) && (unicode.IsDigit(rs[i]) || (rs[i] == '.' && !dot)) {
				if rs[i] == '.' {
					dot = true
				}
				i++
			}
			toks = append(toks, token{kind: tokNum, text: string(rs[start:i]), pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(rs) && unicode.IsLetter(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[start:i]), pos: start})
		case strings.ContainsRune("+-*/^()", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		default:
			return nil, &ParseError{Input: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(rs)})
	return toks, nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(s string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == s
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.src, Pos: p.peek().pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (Expr, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			t = Neg(t)
		}
		terms = append(terms, t)
	}
	return Sum(terms...), nil
}

func (p *parser) parseTerm() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{first}
	for {
		switch {
		case p.isOp("*"):
			p.next()
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case p.isOp("/"):
			p.next()
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, Power(f, Int(-1)))
		case p.peek().kind == tokIdent || p.isOp("("):
			f, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		default:
			return Product(factors...), nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch {
	case p.isOp("-"):
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	case p.isOp("+"):
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Power(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNum:
		p.next()
		r, ok := new(big.Rat).SetString(t.text)
		if !ok || t.text == "." {
			return nil, &ParseError{Input: p.src, Pos: t.pos, Msg: fmt.Sprintf("bad number %q", t.text)}
		}
		return Num{r: r}, nil
	case tokIdent:
		p.next()
		return p.parseIdent(t)
	case tokOp:
		if t.text == "(" {
			p.next()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.errorf("missing closing parenthesis")
			}
			p.next()
			return e, nil
		}
	case tokEOF:
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected %q", t.text)
}

func (p *parser) parseIdent(t token) (Expr, error) {
	name := t.text
	if name == "log" {
		name = "ln"
	}
	if name == "sqrt" || functions[name] {
		var arg Expr
		var err error
		if p.isOp("(") {
			arg, err = p.parsePrimary()
		} else {
			arg, err = p.parsePower()
		}
		if err != nil {
			return nil, err
		}
		if name == "sqrt" {
			return Sqrt(arg), nil
		}
		return Func{name: name, arg: arg}, nil
	}
	if name == ConstPi {
		return Pi(), nil
	}
	if len([]rune(name)) == 1 {
		return Symbol(name), nil
	}
	return nil, &ParseError{Input: p.src, Pos: t.pos, Msg: fmt.Sprintf("unknown identifier %q", name)}
}
