package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// NumberLiteral is a non-negative integer constant.
//
//	make x: number be 42 STOP
//	                  ^^  NumberLiteral{Value: 42}
type NumberLiteral struct {
	Value uint64
}

func (*NumberLiteral) exprNode()        {}
func (n *NumberLiteral) String() string { return fmt.Sprintf("%d", n.Value) }

// StringLiteral is a string constant "..." without its quotes.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) exprNode()        {}
func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// Identifier is a read of a named variable.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// ArithOp is the operator of a BinaryExpr.
type ArithOp int

const (
	OpAdd ArithOp = iota
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	}
	return fmt.Sprintf("ArithOp(%d)", int(op))
}

// BinaryExpr represents Left Op Right. Chains nest to the right:
//
//	a + b + c
//	^   ^^^^^
//	|   Right: BinaryExpr{b + c}
//	Left
type BinaryExpr struct {
	Op    ArithOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

//  Conditions

// CompOp is the comparison in a Condition.
type CompOp int

const (
	CompEqual CompOp = iota
	CompLess
	CompGreater
)

func (op CompOp) String() string {
	switch op {
	case CompEqual:
		return "=="
	case CompLess:
		return "<"
	case CompGreater:
		return ">"
	}
	return fmt.Sprintf("CompOp(%d)", int(op))
}

// Condition is a single comparison. There are no compound conditions.
type Condition struct {
	Left  Expr
	Op    CompOp
	Right Expr
}

func (c Condition) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// DeclType is the type tag given at declaration time.
type DeclType int

const (
	TypeNumber DeclType = iota
	TypeString
)

func (t DeclType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	}
	return fmt.Sprintf("DeclType(%d)", int(t))
}

//  Statement nodes

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// Block is an ordered statement list between { and }.
type Block struct {
	Stmts []Stmt
}

func (b Block) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// VarDecl represents  make name: type be literal STOP
type VarDecl struct {
	Name string
	Type DeclType
	Init Expr // *NumberLiteral for TypeNumber, *StringLiteral for TypeString
}

func (*VarDecl) stmtNode() {}
func (d *VarDecl) String() string {
	return fmt.Sprintf("VarDecl(%s %s = %s)", d.Type, d.Name, d.Init)
}

// Assignment represents  name be expr STOP
type Assignment struct {
	Name  string
	Value Expr
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s = %s)", a.Name, a.Value)
}

// IfStmt represents  maybe (cond) {..} [letsdothisinstead {..}] ENDMAYBE
type IfStmt struct {
	Cond Condition
	Then Block
	Else *Block // nil when there is no else branch
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("IfStmt(if %s then %s else %s)", i.Cond, i.Then, *i.Else)
	}
	return fmt.Sprintf("IfStmt(if %s then %s)", i.Cond, i.Then)
}

// WhileStmt represents  keeponswimming (cond) {..} STOPSWIMMING
type WhileStmt struct {
	Cond Condition
	Body Block
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(while %s do %s)", w.Cond, w.Body)
}

// PrintStmt represents  SCREAM(expr)QUIET
type PrintStmt struct {
	Value Expr
}

func (*PrintStmt) stmtNode() {}
func (p *PrintStmt) String() string {
	return fmt.Sprintf("PrintStmt(%s)", p.Value)
}

// Program is the root of the tree. Parse never returns an empty Program.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	return fmt.Sprintf("Program(len=%d)", len(p.Stmts))
}
