package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calculate evaluates an expression using the given variable values. vars is
// only read, so it may be shared between concurrent calls.
//
// Every error returned unwraps to one of ErrInvalidExpression,
// ErrUndefinedVariable, ErrUnknownFunction, ErrDomain, or ErrDivisionByZero.
func Calculate(expr string, vars map[string]float64) (float64, error) {
	if err := validate(expr); err != nil {
		return 0, err
	}
	e := evaluator{vars: vars}
	return e.run(lex(expr))
}

// opNeg is the operator for prefix negation.
const opNeg = '~'

type operator struct {
	op  byte
	col int
}

func (o operator) String() string {
	if o.op == opNeg {
		return "-"
	}
	return string(o.op)
}

// prec returns the precedence of the operator. Prefix negation shares its
// precedence with multiplication so that -2^2 is -(2^2) while -3*5 is (-3)*5.
func (o operator) prec() int {
	switch o.op {
	case '+', '-':
		return 1
	case '*', '/', opNeg:
		return 2
	case '^':
		return 3
	default:
		return 0
	}
}

// evaluator holds the operand and operator stacks for a single evaluation.
type evaluator struct {
	nums []float64
	ops  []operator
	vars map[string]float64
}

func (e *evaluator) run(l *lexer) (float64, error) {
	// operand is whether the last token completed a term, so that the next
	// token must be an operator, a close bracket, or the end.
	operand := false
	var last lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return 0, err
		}
		switch tok.kind {
		case tokenEOF:
			if !operand {
				return 0, incomplete(tok, last)
			}
			return e.finish(tok)
		case tokenNum, tokenIdent, tokenCall:
			if operand {
				return 0, &TermError{Col: tok.pos, Text: tok.text}
			}
			v, err := e.term(tok)
			if err != nil {
				return 0, err
			}
			e.nums = append(e.nums, v)
			operand = true
		case tokenOpen:
			if operand {
				return 0, &TermError{Col: tok.pos, Text: tok.text}
			}
			e.ops = append(e.ops, operator{op: '(', col: tok.pos})
		case tokenClose:
			if !operand {
				return 0, incomplete(tok, last)
			}
			if err := e.close(tok); err != nil {
				return 0, err
			}
		case tokenOp:
			if !operand {
				switch tok.text {
				case "-":
					e.ops = append(e.ops, operator{op: opNeg, col: tok.pos})
				case "+":
					// Prefix plus does nothing.
				default:
					return 0, &OperatorError{Col: tok.pos, Operator: tok.text}
				}
				break
			}
			if err := e.binary(operator{op: tok.text[0], col: tok.pos}); err != nil {
				return 0, err
			}
			operand = false
		default:
			panic("calc: invalid token " + tok.String())
		}
		last = tok
	}
}

// incomplete creates the error for a subexpression that ends with tok where a
// term is required.
func incomplete(tok, last lexToken) error {
	if last.kind == tokenOp {
		return &OperatorError{Col: last.pos, Operator: last.text}
	}
	return &EmptyExpressionError{Col: tok.pos, End: tok.text}
}

// binary applies pending operators that bind at least as tightly as o, then
// pushes o.
func (e *evaluator) binary(o operator) error {
	for len(e.ops) > 0 {
		top := e.ops[len(e.ops)-1]
		if top.op == '(' || top.prec() < o.prec() {
			break
		}
		e.ops = e.ops[:len(e.ops)-1]
		if err := e.apply(top); err != nil {
			return err
		}
	}
	e.ops = append(e.ops, o)
	return nil
}

// close applies pending operators back to the matching open bracket.
func (e *evaluator) close(tok lexToken) error {
	for {
		if len(e.ops) == 0 {
			return &BracketError{Col: tok.pos, Right: tok.text}
		}
		top := e.ops[len(e.ops)-1]
		e.ops = e.ops[:len(e.ops)-1]
		if top.op == '(' {
			return nil
		}
		if err := e.apply(top); err != nil {
			return err
		}
	}
}

// finish applies all remaining operators and returns the result.
func (e *evaluator) finish(tok lexToken) (float64, error) {
	for len(e.ops) > 0 {
		top := e.ops[len(e.ops)-1]
		e.ops = e.ops[:len(e.ops)-1]
		if top.op == '(' {
			return 0, &BracketError{Col: top.col, Left: "("}
		}
		if err := e.apply(top); err != nil {
			return 0, err
		}
	}
	switch len(e.nums) {
	case 0:
		return 0, &EmptyExpressionError{Col: tok.pos}
	case 1:
		return e.nums[0], nil
	default:
		return 0, &TermError{Col: tok.pos}
	}
}

// pop removes the top operand. The result is false if there is none.
func (e *evaluator) pop() (float64, bool) {
	if len(e.nums) == 0 {
		return 0, false
	}
	r := e.nums[len(e.nums)-1]
	e.nums = e.nums[:len(e.nums)-1]
	return r, true
}

// apply pops the operands of o and pushes its result.
func (e *evaluator) apply(o operator) error {
	b, ok := e.pop()
	if !ok {
		return &OperatorError{Col: o.col, Operator: o.String()}
	}
	if o.op == opNeg {
		e.nums = append(e.nums, -b)
		return nil
	}
	a, ok := e.pop()
	if !ok {
		return &OperatorError{Col: o.col, Operator: o.String()}
	}
	var r float64
	switch o.op {
	case '+':
		r = a + b
	case '-':
		r = a - b
	case '*':
		r = a * b
	case '/':
		if b == 0 {
			return &DivisionError{Col: o.col, X: a}
		}
		r = a / b
	case '^':
		r = math.Pow(a, b)
	default:
		panic("calc: invalid operator " + strconv.Quote(o.String()))
	}
	e.nums = append(e.nums, r)
	return nil
}

// term evaluates a number, variable, or function call.
func (e *evaluator) term(tok lexToken) (float64, error) {
	switch tok.kind {
	case tokenNum:
		return num(tok.text), nil
	case tokenIdent:
		v, ok := e.vars[tok.text]
		if !ok {
			return 0, &NameError{Name: tok.text, Col: tok.pos}
		}
		return v, nil
	case tokenCall:
		return e.call(tok)
	default:
		panic("calc: term on " + tok.String())
	}
}

// call evaluates a function call. The argument must be a single number or
// variable name.
func (e *evaluator) call(tok lexToken) (float64, error) {
	fn, err := Lookup(tok.text)
	if err != nil {
		return 0, &UnknownFuncError{Name: tok.text, Col: tok.pos}
	}
	start := tok.pos + utf8.RuneCountInString(tok.text) + 1
	arg := strings.TrimLeft(tok.arg, " ")
	col := start + utf8.RuneCountInString(tok.arg) - utf8.RuneCountInString(arg)
	arg = strings.TrimRight(arg, " ")
	if arg == "" {
		return 0, &EmptyExpressionError{Col: start + utf8.RuneCountInString(tok.arg), End: ")"}
	}
	x, ok := argnum(arg)
	if !ok {
		x, ok = e.vars[arg]
		if !ok {
			return 0, &NameError{Name: arg, Col: col}
		}
	}
	r, err := fn.Call(x)
	if err != nil {
		var derr *DomainError
		if errors.As(err, &derr) {
			derr.Col = tok.pos
		}
		return 0, err
	}
	return r, nil
}

// argnum parses a function argument as a number. Arguments that start with a
// letter are always names, so "inf" and "nan" are variables.
func argnum(s string) (float64, bool) {
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsLetter(r) {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return x, true
}

// num parses a number token. Values too large for float64 become +Inf.
func num(s string) float64 {
	r, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil: // do nothing
	case errors.Is(err, strconv.ErrRange):
		// ParseFloat already gives the correctly signed infinity or zero.
	default:
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
	return r
}
