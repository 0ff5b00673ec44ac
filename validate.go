package calc

import (
	"strings"
	"unicode"
)

// validate checks that brackets in src are balanced and that every rune may
// appear in an expression. It does not check the order of tokens.
func validate(src string) error {
	var open []int
	col := 0
	for _, r := range src {
		col++
		switch {
		case r == ' ':
		case r == '(':
			open = append(open, col)
		case r == ')':
			if len(open) == 0 {
				return &BracketError{Col: col, Right: ")"}
			}
			open = open[:len(open)-1]
		case isDigit(r), r == '.', unicode.IsLetter(r), strings.ContainsRune(Operators, r):
		default:
			return &LexError{Text: string(r), Col: col}
		}
	}
	if len(open) != 0 {
		return &BracketError{Col: open[len(open)-1], Left: "("}
	}
	return nil
}
