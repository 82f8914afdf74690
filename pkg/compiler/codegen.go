package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeGen walks an AST and emits Rust source text.
type CodeGen struct {
	out    strings.Builder
	indent int
}

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

// line writes one indented output line.
func (cg *CodeGen) line(format string, args ...any) {
	cg.out.WriteString(strings.Repeat("    ", cg.indent))
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// rustType maps a declared type to its Rust annotation.
func rustType(t DeclType) string {
	switch t {
	case TypeNumber:
		return "usize"
	case TypeString:
		return "String"
	}
	panic(fmt.Sprintf("codegen: unhandled declared type %v", t))
}

// quoteRust renders s as a Rust string literal. Backslashes, quotes and
// control characters are escaped so the literal stays on one line.
func quoteRust(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// genExpr returns the Rust text for e. Additions are fully parenthesised.
func (cg *CodeGen) genExpr(e Expr) string {
	switch n := e.(type) {
	case *NumberLiteral:
		return strconv.FormatUint(n.Value, 10)
	case *Identifier:
		return n.Name
	case *StringLiteral:
		return "String::from(" + quoteRust(n.Value) + ")"
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", cg.genExpr(n.Left), n.Op, cg.genExpr(n.Right))
	}
	panic(fmt.Sprintf("codegen: unhandled expression %T", e))
}

func (cg *CodeGen) genCondition(c Condition) string {
	return fmt.Sprintf("(%s %s %s)", cg.genExpr(c.Left), c.Op, cg.genExpr(c.Right))
}

func (cg *CodeGen) genBlock(b Block) {
	cg.indent++
	for _, s := range b.Stmts {
		cg.genStmt(s)
	}
	cg.indent--
}

func (cg *CodeGen) genStmt(s Stmt) {
	switch n := s.(type) {

	case *VarDecl:
		cg.line("let mut %s: %s = %s;", n.Name, rustType(n.Type), cg.genExpr(n.Init))

	case *Assignment:
		cg.line("%s = %s;", n.Name, cg.genExpr(n.Value))

	case *IfStmt:
		cg.line("if %s {", cg.genCondition(n.Cond))
		cg.genBlock(n.Then)
		if n.Else != nil {
			cg.line("} else {")
			cg.genBlock(*n.Else)
		}
		cg.line("}")

	case *WhileStmt:
		cg.line("while %s {", cg.genCondition(n.Cond))
		cg.genBlock(n.Body)
		cg.line("}")

	case *PrintStmt:
		cg.line(`println!("{}", %s);`, cg.genExpr(n.Value))

	default:
		panic(fmt.Sprintf("codegen: unhandled statement %T", s))
	}
}

// Generate emits a complete Rust program for prog: a single fn main whose body
// holds the translated statements in source order. It cannot fail for a
// Program produced by Parse and returns the same text for the same tree.
func Generate(prog *Program) string {
	cg := newCodeGen()
	cg.line("fn main() {")
	cg.genBlock(Block{Stmts: prog.Stmts})
	cg.line("}")
	return cg.out.String()
}
