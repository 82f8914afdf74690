package compiler

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func parseSource(t *testing.T, src string) (*Program, error) {
	t.Helper()
	return Parse(Lex(src), src)
}

// TestParse verifies that Parse produces the correct AST for valid inputs.
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Stmt
	}{
		{
			name:  "Number Declaration",
			input: "make x: number be 42 STOP",
			expected: []Stmt{
				&VarDecl{Name: "x", Type: TypeNumber, Init: &NumberLiteral{Value: 42}},
			},
		},
		{
			name:  "String Declaration",
			input: `make s: string be "hi" STOP`,
			expected: []Stmt{
				&VarDecl{Name: "s", Type: TypeString, Init: &StringLiteral{Value: "hi"}},
			},
		},
		{
			name:  "Assignment",
			input: "x be y STOP",
			expected: []Stmt{
				&Assignment{Name: "x", Value: &Identifier{Name: "y"}},
			},
		},
		{
			name:  "Right Associative Addition",
			input: "r be a+b+c STOP",
			expected: []Stmt{
				&Assignment{Name: "r", Value: &BinaryExpr{
					Op:   OpAdd,
					Left: &Identifier{Name: "a"},
					Right: &BinaryExpr{
						Op:    OpAdd,
						Left:  &Identifier{Name: "b"},
						Right: &Identifier{Name: "c"},
					},
				}},
			},
		},
		{
			name:  "Four Term Chain",
			input: "r be 1 + 2 + 3 + 4 STOP",
			expected: []Stmt{
				&Assignment{Name: "r", Value: &BinaryExpr{
					Op:   OpAdd,
					Left: &NumberLiteral{Value: 1},
					Right: &BinaryExpr{
						Op:   OpAdd,
						Left: &NumberLiteral{Value: 2},
						Right: &BinaryExpr{
							Op:    OpAdd,
							Left:  &NumberLiteral{Value: 3},
							Right: &NumberLiteral{Value: 4},
						},
					},
				}},
			},
		},
		{
			name:  "If Without Else",
			input: "maybe(x tinyerthan y){ SCREAM(x)QUIET } ENDMAYBE",
			expected: []Stmt{
				&IfStmt{
					Cond: Condition{Left: &Identifier{Name: "x"}, Op: CompLess, Right: &Identifier{Name: "y"}},
					Then: Block{Stmts: []Stmt{&PrintStmt{Value: &Identifier{Name: "x"}}}},
				},
			},
		},
		{
			name:  "If With Else",
			input: "maybe(x tinyerthan y){ SCREAM(x)QUIET } letsdothisinstead{ SCREAM(y)QUIET } ENDMAYBE",
			expected: []Stmt{
				&IfStmt{
					Cond: Condition{Left: &Identifier{Name: "x"}, Op: CompLess, Right: &Identifier{Name: "y"}},
					Then: Block{Stmts: []Stmt{&PrintStmt{Value: &Identifier{Name: "x"}}}},
					Else: &Block{Stmts: []Stmt{&PrintStmt{Value: &Identifier{Name: "y"}}}},
				},
			},
		},
		{
			name:  "Empty Blocks",
			input: "maybe(a notalmostthesamethesame 1){} letsdothisinstead{} ENDMAYBE",
			expected: []Stmt{
				&IfStmt{
					Cond: Condition{Left: &Identifier{Name: "a"}, Op: CompEqual, Right: &NumberLiteral{Value: 1}},
					Then: Block{},
					Else: &Block{},
				},
			},
		},
		{
			name:  "While Loop",
			input: "keeponswimming(i oppositeoftinyerthan 0){ i be i + 1 STOP } STOPSWIMMING",
			expected: []Stmt{
				&WhileStmt{
					Cond: Condition{Left: &Identifier{Name: "i"}, Op: CompGreater, Right: &NumberLiteral{Value: 0}},
					Body: Block{Stmts: []Stmt{
						&Assignment{Name: "i", Value: &BinaryExpr{Op: OpAdd, Left: &Identifier{Name: "i"}, Right: &NumberLiteral{Value: 1}}},
					}},
				},
			},
		},
		{
			name:  "Condition With Sums",
			input: "keeponswimming(a + 1 tinyerthan b + c){} STOPSWIMMING",
			expected: []Stmt{
				&WhileStmt{
					Cond: Condition{
						Left:  &BinaryExpr{Op: OpAdd, Left: &Identifier{Name: "a"}, Right: &NumberLiteral{Value: 1}},
						Op:    CompLess,
						Right: &BinaryExpr{Op: OpAdd, Left: &Identifier{Name: "b"}, Right: &Identifier{Name: "c"}},
					},
					Body: Block{},
				},
			},
		},
		{
			name:  "Nested If In While",
			input: "keeponswimming(a tinyerthan 3){ maybe(a notalmostthesamethesame 1){ SCREAM(\"one\")QUIET } ENDMAYBE } STOPSWIMMING",
			expected: []Stmt{
				&WhileStmt{
					Cond: Condition{Left: &Identifier{Name: "a"}, Op: CompLess, Right: &NumberLiteral{Value: 3}},
					Body: Block{Stmts: []Stmt{
						&IfStmt{
							Cond: Condition{Left: &Identifier{Name: "a"}, Op: CompEqual, Right: &NumberLiteral{Value: 1}},
							Then: Block{Stmts: []Stmt{&PrintStmt{Value: &StringLiteral{Value: "one"}}}},
						},
					}},
				},
			},
		},
		{
			name:  "Print Sum",
			input: `SCREAM("a" + b)QUIET`,
			expected: []Stmt{
				&PrintStmt{Value: &BinaryExpr{Op: OpAdd, Left: &StringLiteral{Value: "a"}, Right: &Identifier{Name: "b"}}},
			},
		},
		{
			name:  "Several Statements",
			input: "make a: number be 0 STOP\nmake b: number be 1 STOP\nSCREAM(a)QUIET",
			expected: []Stmt{
				&VarDecl{Name: "a", Type: TypeNumber, Init: &NumberLiteral{Value: 0}},
				&VarDecl{Name: "b", Type: TypeNumber, Init: &NumberLiteral{Value: 1}},
				&PrintStmt{Value: &Identifier{Name: "a"}},
			},
		},
		{
			name:  "Largest Number",
			input: "x be 18446744073709551615 STOP",
			expected: []Stmt{
				&Assignment{Name: "x", Value: &NumberLiteral{Value: 18446744073709551615}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parseSource(t, tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(prog.Stmts, tt.expected) {
				t.Errorf("AST mismatch:\n got  %v\n want %v", prog.Stmts, tt.expected)
			}
		})
	}
}

// TestParseErrors verifies the structured error for each kind of failure.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string    // SyntaxError.Expected
		found     TokenType // SyntaxError.Found.Type
		line, col int
	}{
		{name: "Empty Input", input: "", expected: "statement", found: EOF, line: 1, col: 1},
		{name: "Only Unknown Characters", input: ";;;", expected: "statement", found: EOF, line: 1, col: 4},
		{name: "Bad Leading Token", input: "STOP", expected: "statement", found: STOP, line: 1, col: 1},
		{name: "Leading Number", input: "42 be x STOP", expected: "statement", found: NUMBER, line: 1, col: 1},
		{name: "Missing Terminator", input: "x be 1", expected: "'STOP'", found: EOF, line: 1, col: 7},
		{name: "Missing Be", input: "x 1 STOP", expected: "'be'", found: NUMBER, line: 1, col: 3},
		{name: "Declaration Without Name", input: "make : number be 1 STOP", expected: "identifier", found: COLON, line: 1, col: 6},
		{name: "Declaration Without Colon", input: "make x number be 1 STOP", expected: "':'", found: TYPE_NUMBER, line: 1, col: 8},
		{name: "Declaration Bad Type", input: "make a: 5 be 5 STOP", expected: "type name ('number' or 'string')", found: NUMBER, line: 1, col: 9},
		{name: "Number Type With String", input: `make s: number be "hi" STOP`, expected: "number literal", found: STRING, line: 1, col: 19},
		{name: "String Type With Number", input: "make s: string be 5 STOP", expected: "string literal", found: NUMBER, line: 1, col: 19},
		{name: "Number Type With Identifier", input: "make s: number be y STOP", expected: "number literal", found: IDENTIFIER, line: 1, col: 19},
		{name: "Number Type With Sum", input: "make s: number be 1 + 2 STOP", expected: "number literal", found: NUMBER, line: 1, col: 19},
		{name: "String Type With Identifier", input: "make s: string be y STOP", expected: "string literal", found: IDENTIFIER, line: 1, col: 19},
		{name: "Number Overflow", input: "x be 18446744073709551616 STOP", expected: "number literal", found: NUMBER, line: 1, col: 6},
		{name: "Dangling Plus", input: "x be 1 + STOP", expected: "expression", found: STOP, line: 1, col: 10},
		{name: "If Missing Paren", input: "maybe x tinyerthan y {} ENDMAYBE", expected: "'('", found: IDENTIFIER, line: 1, col: 7},
		{name: "If Missing Comparison", input: "maybe(x){} ENDMAYBE", expected: "comparison operator", found: RPAREN, line: 1, col: 8},
		{name: "If Missing End", input: "maybe(x tinyerthan y){}", expected: "'ENDMAYBE'", found: EOF, line: 1, col: 24},
		{name: "If Wrong End", input: "maybe(x tinyerthan y){} STOPSWIMMING", expected: "'ENDMAYBE'", found: ENDWHILE, line: 1, col: 25},
		{name: "Else Without Block", input: "maybe(x tinyerthan y){} letsdothisinstead ENDMAYBE", expected: "'{'", found: ENDIF, line: 1, col: 43},
		{name: "Unclosed Block", input: "keeponswimming(x tinyerthan y){ x be 1 STOP", expected: "'}'", found: EOF, line: 1, col: 44},
		{name: "While Missing End", input: "keeponswimming(x tinyerthan y){}", expected: "'STOPSWIMMING'", found: EOF, line: 1, col: 33},
		{name: "Print Missing Quiet", input: "SCREAM(x)", expected: "'QUIET'", found: EOF, line: 1, col: 10},
		{name: "Print Missing Paren", input: "SCREAM x QUIET", expected: "'('", found: IDENTIFIER, line: 1, col: 8},
		{name: "Stray Else", input: "letsdothisinstead {}", expected: "statement", found: ELSE, line: 1, col: 1},
		{name: "Error On Second Line", input: "x be 1 STOP\ny be STOP", expected: "expression", found: STOP, line: 2, col: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parseSource(t, tt.input)
			if err == nil {
				t.Fatalf("expected error, got program %v", prog.Stmts)
			}
			if prog != nil {
				t.Errorf("expected no partial program, got %v", prog)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("errors.Is(err, ErrSyntax) = false")
			}
			if se.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", se.Expected, tt.expected)
			}
			if se.Found.Type != tt.found {
				t.Errorf("Found.Type = %s, want %s", se.Found.Type, tt.found)
			}
			if se.Found.Line != tt.line || se.Found.Col != tt.col {
				t.Errorf("position = %d:%d, want %d:%d", se.Found.Line, se.Found.Col, tt.line, tt.col)
			}
		})
	}
}

func TestParseMismatchMessage(t *testing.T) {
	_, err := parseSource(t, `make s: number be "hi" STOP`)
	if err == nil {
		t.Fatal("expected error")
	}
	want := `line 1:19: number variable "s" must be initialised with a number literal, got "hi"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseMatchingDeclarationPairs(t *testing.T) {
	tests := []struct {
		src     string
		wantErr bool
	}{
		{"make s: string be \"hi\" STOP", false},
		{"make n: number be 7 STOP", false},
		{"make s: string be 7 STOP", true},
		{"make n: number be \"7\" STOP", true},
	}
	for _, tt := range tests {
		_, err := parseSource(t, tt.src)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
		}
	}
}

func TestParseEmptyTokenSlice(t *testing.T) {
	for _, tokens := range [][]Token{nil, {}} {
		prog, err := Parse(tokens, "")
		if err == nil || prog != nil {
			t.Fatalf("Parse(%v) = %v, %v; want error", tokens, prog, err)
		}
		if !IsIncomplete(err) {
			t.Errorf("empty program error should be incomplete: %v", err)
		}
	}
}

func TestParseIgnoresSkippedCharacters(t *testing.T) {
	// ';' and '=' are not part of the language and are dropped by the lexer.
	prog, err := parseSource(t, "make x: number be 1 STOP; x be 2 STOP;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
}

func TestASTString(t *testing.T) {
	prog, err := parseSource(t, "maybe(a tinyerthan b + c){ SCREAM(\"x\")QUIET } letsdothisinstead{ a be 1 STOP } ENDMAYBE")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := prog.Stmts[0].String()
	want := `IfStmt(if (a < (b + c)) then {PrintStmt("x")} else {Assignment(a = 1)})`
	if got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if !strings.HasPrefix(prog.String(), "Program(len=1)") {
		t.Errorf("Program.String() = %s", prog.String())
	}
}
