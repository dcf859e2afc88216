package expr

import "github.com/agbru/largeint/internal/largeint"

// node is an expression tree element.
type node interface {
	position() int
}

type numberLit struct {
	pos   int
	value *largeint.Int
}

type varRef struct {
	pos  int
	name string
}

type unaryExpr struct {
	pos int
	op  string
	x   node
}

type binaryExpr struct {
	pos  int
	op   string
	x, y node
}

type callExpr struct {
	pos  int
	name string
	args []node
}

// assignStmt binds the value of x to name. It is only valid at the top level.
type assignStmt struct {
	pos  int
	name string
	x    node
}

func (n numberLit) position() int  { return n.pos }
func (n varRef) position() int     { return n.pos }
func (n unaryExpr) position() int  { return n.pos }
func (n binaryExpr) position() int { return n.pos }
func (n callExpr) position() int   { return n.pos }
func (n assignStmt) position() int { return n.pos }
