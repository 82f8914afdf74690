package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
// It looks at most one token ahead and never backtracks.
//
// Grammar:
//
//	program    = statement+
//	statement  = varDecl | assignment | ifStmt | whileStmt | printStmt
//	varDecl    = "make" IDENTIFIER ":" ("number" | "string") "be" expression "STOP"
//	assignment = IDENTIFIER "be" expression "STOP"
//	ifStmt     = "maybe" "(" condition ")" block ("letsdothisinstead" block)? "ENDMAYBE"
//	whileStmt  = "keeponswimming" "(" condition ")" block "STOPSWIMMING"
//	printStmt  = "SCREAM" "(" expression ")" "QUIET"
//	block      = "{" statement* "}"
//	condition  = expression ("notalmostthesamethesame" | "tinyerthan" | "oppositeoftinyerthan") expression
//	expression = term ("+" expression)?
//	term       = NUMBER | IDENTIFIER | STRING
type Parser struct {
	tokens []Token
	pos    int
	eof    Token // returned by peek once tokens are exhausted
}

// NewParser prepares a parser over tokens. rawSource is the text the tokens
// were lexed from; it only positions the end-of-input sentinel.
func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, eof: eofToken(rawSource)}
}

// eofToken places the EOF sentinel just past the last character of src.
func eofToken(src string) Token {
	line := strings.Count(src, "\n") + 1
	lastLine := src[strings.LastIndexByte(src, '\n')+1:]
	return Token{Type: EOF, Line: line, Col: utf8.RuneCountInString(lastLine) + 1}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, &SyntaxError{Expected: describe(tt), Found: tok}
	}
	return p.advance(), nil
}

// ParseProgram parses every remaining token as a list of statements.
// A program without statements is rejected.
func (p *Parser) ParseProgram() (*Program, error) {
	var stmts []Stmt
	for p.pos < len(p.tokens) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if len(stmts) == 0 {
		return nil, &SyntaxError{Expected: "statement", Found: p.peek()}
	}
	return &Program{Stmts: stmts}, nil
}

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case MAKE:
		return p.parseVarDecl()
	case IDENTIFIER:
		return p.parseAssignment()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case PRINT:
		return p.parsePrint()
	default:
		return nil, &SyntaxError{Expected: "statement", Found: tok}
	}
}

// parseVarDecl parses  make name: type be literal STOP
// The initializer must be a literal of the declared type.
func (p *Parser) parseVarDecl() (Stmt, error) {
	p.advance() // make
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}

	var declType DeclType
	switch tok := p.peek(); tok.Type {
	case TYPE_NUMBER:
		declType = TypeNumber
	case TYPE_STRING:
		declType = TypeString
	default:
		return nil, &SyntaxError{Expected: "type name ('number' or 'string')", Found: tok}
	}
	p.advance()

	if _, err := p.expect(BE); err != nil {
		return nil, err
	}
	initTok := p.peek()
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	matches := false
	switch declType {
	case TypeNumber:
		_, matches = init.(*NumberLiteral)
	case TypeString:
		_, matches = init.(*StringLiteral)
	}
	if !matches {
		want := describe(NUMBER)
		if declType == TypeString {
			want = describe(STRING)
		}
		return nil, &SyntaxError{
			Expected: want,
			Found:    initTok,
			Msg:      fmt.Sprintf("%s variable %q must be initialised with a %s, got %s", declType, nameTok.Lexeme, want, init),
		}
	}

	if _, err := p.expect(STOP); err != nil {
		return nil, err
	}
	return &VarDecl{Name: nameTok.Lexeme, Type: declType, Init: init}, nil
}

// parseAssignment parses  name be expr STOP
func (p *Parser) parseAssignment() (Stmt, error) {
	nameTok := p.advance()
	if _, err := p.expect(BE); err != nil {
		return nil, err
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(STOP); err != nil {
		return nil, err
	}
	return &Assignment{Name: nameTok.Lexeme, Value: val}, nil
}

// parseIf parses  maybe ( cond ) block [ letsdothisinstead block ] ENDMAYBE
func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // maybe
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *Block
	if p.peek().Type == ELSE {
		p.advance()
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = &b
	}

	if _, err := p.expect(ENDIF); err != nil {
		return nil, err
	}
	return &IfStmt{Cond: cond, Then: then, Else: elseBlock}, nil
}

// parseWhile parses  keeponswimming ( cond ) block STOPSWIMMING
func (p *Parser) parseWhile() (Stmt, error) {
	p.advance() // keeponswimming
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ENDWHILE); err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// parsePrint parses  SCREAM ( expr ) QUIET
func (p *Parser) parsePrint() (Stmt, error) {
	p.advance() // SCREAM
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(ENDPRINT); err != nil {
		return nil, err
	}
	return &PrintStmt{Value: val}, nil
}

// parseBlock parses { stmt ... }
func (p *Parser) parseBlock() (Block, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return Block{}, err
	}
	var stmts []Stmt
	for {
		tok := p.peek()
		if tok.Type == RBRACE {
			break
		}
		if tok.Type == EOF {
			return Block{}, &SyntaxError{Expected: describe(RBRACE), Found: tok}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return Block{}, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // }
	return Block{Stmts: stmts}, nil
}

// parseParenCondition parses ( cond ) as used by maybe and keeponswimming.
func (p *Parser) parseParenCondition() (Condition, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return Condition{}, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return Condition{}, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return Condition{}, err
	}
	return cond, nil
}

// parseCondition parses  expr compOp expr
func (p *Parser) parseCondition() (Condition, error) {
	left, err := p.parseExpression()
	if err != nil {
		return Condition{}, err
	}

	var op CompOp
	switch tok := p.peek(); tok.Type {
	case EQUALS:
		op = CompEqual
	case LESS:
		op = CompLess
	case GREATER:
		op = CompGreater
	default:
		return Condition{}, &SyntaxError{Expected: "comparison operator", Found: tok}
	}
	p.advance()

	right, err := p.parseExpression()
	if err != nil {
		return Condition{}, err
	}
	return Condition{Left: left, Op: op, Right: right}, nil
}

// parseExpression parses  term [ + expression ]
// The right operand recurses into parseExpression, so a + b + c groups as
// a + (b + c).
func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != PLUS {
		return left, nil
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: OpAdd, Left: left, Right: right}, nil
}

// parseTerm parses a single literal or identifier.
func (p *Parser) parseTerm() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		v, err := strconv.ParseUint(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &SyntaxError{
				Expected: describe(NUMBER),
				Found:    tok,
				Msg:      fmt.Sprintf("number literal %s does not fit in 64 bits", tok.Lexeme),
			}
		}
		p.advance()
		return &NumberLiteral{Value: v}, nil
	case IDENTIFIER:
		p.advance()
		return &Identifier{Name: tok.Lexeme}, nil
	case STRING:
		p.advance()
		return &StringLiteral{Value: tok.Lexeme}, nil
	default:
		return nil, &SyntaxError{Expected: "expression", Found: tok}
	}
}

// Parse builds a Program from tokens. rawSource is the text they were lexed
// from. The first grammar violation aborts the parse with a *SyntaxError.
func Parse(tokens []Token, rawSource string) (*Program, error) {
	return NewParser(tokens, rawSource).ParseProgram()
}
