package expr

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/largeint/internal/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokAssign
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokOp:
		return "operator"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokAssign:
		return "'='"
	}
	return "token"
}

// token is a lexical unit. For numbers, base is 2 or 10 and text holds the
// digits without any prefix.
type token struct {
	kind tokenKind
	text string
	base int
	pos  int
}

// twoCharOps lists operators that must be matched before their one-character
// prefixes.
var twoCharOps = []string{"<<", ">>", "==", "!=", "<=", ">="}

const oneCharOps = "+-*/%&|^<>"

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') }

// tokenize splits input into tokens, terminated by a tokEOF token.
func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isDigit(c):
			tok, next, err := scanNumber(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case isLetter(c):
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})

		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++

		default:
			if op := matchTwoCharOp(input[i:]); op != "" {
				toks = append(toks, token{kind: tokOp, text: op, pos: i})
				i += 2
				continue
			}
			if c == '=' {
				toks = append(toks, token{kind: tokAssign, text: "=", pos: i})
				i++
				continue
			}
			if strings.IndexByte(oneCharOps, c) >= 0 {
				toks = append(toks, token{kind: tokOp, text: string(c), pos: i})
				i++
				continue
			}
			return nil, apperrors.ParseError{Input: input, Pos: i, Message: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func matchTwoCharOp(s string) string {
	if len(s) < 2 {
		return ""
	}
	for _, op := range twoCharOps {
		if s[:2] == op {
			return op
		}
	}
	return ""
}

// scanNumber reads a literal starting at input[start]. Bare digit runs and
// 0b-prefixed runs are binary; 0d-prefixed runs are decimal.
func scanNumber(input string, start int) (token, int, error) {
	base := 2
	i := start
	explicit := false
	if input[i] == '0' && i+1 < len(input) {
		switch input[i+1] {
		case 'b', 'B':
			i += 2
			explicit = true
		case 'd', 'D':
			base = 10
			i += 2
			explicit = true
		}
	}
	digitsStart := i
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i == digitsStart {
		return token{}, 0, apperrors.ParseError{Input: input, Pos: start, Message: "missing digits after base prefix"}
	}
	if i < len(input) && isLetter(input[i]) {
		return token{}, 0, apperrors.ParseError{Input: input, Pos: i, Message: fmt.Sprintf("unexpected %q in number", input[i])}
	}
	digits := input[digitsStart:i]
	if base == 2 {
		if j := strings.IndexFunc(digits, func(r rune) bool { return r != '0' && r != '1' }); j >= 0 {
			msg := fmt.Sprintf("invalid binary digit %q", digits[j])
			if !explicit {
				msg += " (use the 0d prefix for decimal literals)"
			}
			return token{}, 0, apperrors.ParseError{Input: input, Pos: digitsStart + j, Message: msg}
		}
	}
	return token{kind: tokNumber, text: digits, base: base, pos: start}, i, nil
}
