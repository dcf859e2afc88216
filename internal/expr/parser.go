package expr

import (
	"fmt"

	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/largeint"
)

// Binary operator precedence, following Go.
var precedence = map[string]int{
	"*": 5, "/": 5, "%": 5, "<<": 5, ">>": 5, "&": 5,
	"+": 4, "-": 4, "|": 4, "^": 4,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
}

type parser struct {
	input string
	toks  []token
	pos   int
}

// Parse parses a single statement: either an expression or an assignment of
// the form name = expression.
func parse(input string) (node, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}

	var stmt node
	if p.peek().kind == tokIdent && p.toks[p.pos+1].kind == tokAssign {
		name := p.next()
		p.next()
		if _, reserved := builtins[name.text]; reserved || name.text == lastResult {
			return nil, p.errorf(name, "cannot assign to %q", name.text)
		}
		x, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		stmt = assignStmt{pos: name.pos, name: name.text, x: x}
	} else {
		stmt, err = p.parseBinary(1)
		if err != nil {
			return nil, err
		}
	}

	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s %q", tok.kind, tok.text)
	}
	return stmt, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return apperrors.ParseError{Input: p.input, Pos: tok.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return tok, nil
}

func describe(tok token) string {
	if tok.kind == tokEOF {
		return tok.kind.String()
	}
	return fmt.Sprintf("%q", tok.text)
}

// parseBinary implements precedence climbing for operators binding at least
// as tightly as minPrec.
func (p *parser) parseBinary(minPrec int) (node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec, ok := precedence[tok.text]
		if tok.kind != tokOp || !ok || prec < minPrec {
			return x, nil
		}
		p.next()
		y, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		x = binaryExpr{pos: tok.pos, op: tok.text, x: x, y: y}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind == tokOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{pos: tok.pos, op: tok.text, x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, err := literalValue(tok)
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		return numberLit{pos: tok.pos, value: v}, nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(tok)
		}
		return varRef{pos: tok.pos, name: tok.text}, nil

	case tokLParen:
		x, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, p.errorf(tok, "unexpected %s", describe(tok))
}

func (p *parser) parseCall(name token) (node, error) {
	b, ok := builtins[name.text]
	if !ok {
		return nil, p.errorf(name, "unknown function %q", name.text)
	}
	p.next() // (

	var args []node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseBinary(1)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if len(args) != b.arity {
		return nil, p.errorf(name, "%s expects %d argument(s), got %d", name.text, b.arity, len(args))
	}
	return callExpr{pos: name.pos, name: name.text, args: args}, nil
}

func literalValue(tok token) (*largeint.Int, error) {
	if tok.base == 10 {
		return largeint.ParseDecimal(tok.text)
	}
	return largeint.Parse(tok.text)
}
