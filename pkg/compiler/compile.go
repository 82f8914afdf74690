package compiler

import "fmt"

// Options controls a Compile run.
type Options struct {
	// Strict rejects characters the lexer would otherwise skip.
	Strict bool
}

// Compile translates klurigt source into Rust source. Errors are wrapped with
// the stage that produced them; errors.As still reaches *SyntaxError and
// *LexError.
func Compile(src string, opts Options) (string, error) {
	lx := NewLexer(src)
	var tokens []Token
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}

	if skipped := lx.Skipped(); opts.Strict && len(skipped) > 0 {
		first := skipped[0]
		return "", fmt.Errorf("lex: %w", &LexError{Char: first.Char, Line: first.Line, Col: first.Col})
	}

	prog, err := Parse(tokens, src)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	return Generate(prog), nil
}
