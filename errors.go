package calc

import (
	"errors"
	"strconv"
)

// Error kinds. Every error returned by Calculate unwraps to exactly one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrInvalidExpression is the kind of errors caused by malformed input:
	// unbalanced brackets, illegal characters, malformed numbers, and
	// misplaced operators or terms.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrUndefinedVariable is the kind of errors caused by a variable that
	// has no value.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrUnknownFunction is the kind of errors caused by calling a function
	// that does not exist.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrDomain is the kind of errors caused by calling a function on an
	// argument outside its domain.
	ErrDomain = errors.New("argument outside domain")
	// ErrDivisionByZero is the kind of errors caused by dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// IsArithmetic returns whether err is an arithmetic failure, i.e. a division
// by zero or a domain error, as opposed to a problem with the input.
func IsArithmetic(err error) bool {
	return errors.Is(err, ErrDomain) || errors.Is(err, ErrDivisionByZero)
}

// OperatorError is an error indicating an operator that is missing an
// operand. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator missing an operand.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "missing operand for operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrInvalidExpression
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, if it is the unmatched one.
	Left string
	// Right is the closing bracket, if it is the unmatched one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrInvalidExpression
}

// TermError is an error indicating two terms with no operator between them,
// e.g. "2 3" or "(1)(2)". It implements InputError.
type TermError struct {
	// Col is the position of the second term.
	Col int
	// Text is the token that starts the second term.
	Text string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
}

func (err *TermError) Pos() int {
	return err.Col
}

func (err *TermError) Unwrap() error {
	return ErrInvalidExpression
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrInvalidExpression
}

// NameError is an error from a lookup for a variable that is missing from the
// variables given to Calculate.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the name.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUndefinedVariable
}

// DivisionError is an error indicating a division by exactly zero. It is an
// arithmetic error, so it records the operator's position in Col but does not
// implement InputError.
type DivisionError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return errpos(err.Col, "division by zero: "+strconv.FormatFloat(err.X, 'g', -1, 64)+"/0")
}

func (err *DivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError. Arithmetic errors (DomainError and
// DivisionError) do not; see IsArithmetic.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*UnknownFuncError)(nil)
	_ InputError = (*LexError)(nil)
)
