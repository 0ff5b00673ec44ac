package calc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	// arg is the raw argument text of a call token.
	arg  string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	s := t.kind.String() + ":" + t.text
	if t.kind == tokenCall {
		s += "(" + t.arg + ")"
	}
	return s + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal number.
	tokenNum
	// tokenIdent is a variable name.
	tokenIdent
	// tokenCall is a name immediately followed by an open bracket. The text
	// is the function name, and arg is everything up to the first close
	// bracket.
	tokenCall
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
)

var tokenNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenCall:  "Call",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// lexer scans tokens from an expression one at a time. Positions are 1-based
// rune columns.
type lexer struct {
	src string
	off int
	col int
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// peek returns the next rune without consuming it, or -1 at the end of input.
func (l *lexer) peek() rune {
	if l.off >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r
}

// advance consumes one rune.
func (l *lexer) advance() rune {
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.col++
	return r
}

// scan consumes runes while ok holds and returns them.
func (l *lexer) scan(ok func(rune) bool) string {
	start := l.off
	for l.off < len(l.src) && ok(l.peek()) {
		l.advance()
	}
	return l.src[start:l.off]
}

// next scans the next token from the input. At the end of input, the result
// is an EOF token, and every later call returns another.
func (l *lexer) next() (lexToken, error) {
	l.scan(func(r rune) bool { return r == ' ' })
	tok := lexToken{pos: l.col + 1}
	r := l.peek()
	switch {
	case r < 0:
		tok.kind = tokenEOF
		return tok, nil
	case isDigit(r), r == '.':
		tok.text = l.scan(func(r rune) bool { return isDigit(r) || r == '.' })
		tok.kind = tokenNum
		if err := checkNum(tok.text); err != nil {
			return lexToken{pos: tok.pos}, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return tok, nil
	case unicode.IsLetter(r):
		tok.text = l.scan(unicode.IsLetter)
		if l.peek() != '(' {
			tok.kind = tokenIdent
			return tok, nil
		}
		l.advance()
		tok.kind = tokenCall
		tok.arg = l.scan(func(r rune) bool { return r != ')' })
		if l.peek() == ')' {
			l.advance()
		}
		return tok, nil
	case strings.ContainsRune(Operators, r):
		l.advance()
		tok.text = string(r)
		tok.kind = tokenOp
		return tok, nil
	case r == '(':
		l.advance()
		tok.text = "("
		tok.kind = tokenOpen
		return tok, nil
	case r == ')':
		l.advance()
		tok.text = ")"
		tok.kind = tokenClose
		return tok, nil
	default:
		l.advance()
		return lexToken{pos: tok.pos}, &LexError{Text: string(r), Col: tok.pos}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// checkNum checks that a run of digits and dots is a valid decimal number.
func checkNum(s string) error {
	var dig, dot bool
	for _, r := range s {
		switch {
		case r == '.':
			if dot {
				return strconv.ErrSyntax
			}
			dot = true
		case isDigit(r):
			dig = true
		default:
			return strconv.ErrSyntax
		}
	}
	if !dig {
		return strconv.ErrSyntax
	}
	return nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid token or rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string for a rune that cannot start any token.
	Kind string
	// Col is the position of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrInvalidExpression
}
