package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is the sentinel every *SyntaxError unwraps to.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownChar is the sentinel every *LexError unwraps to.
	ErrUnknownChar = errors.New("unknown character")
)

// SyntaxError reports the first grammar violation found by the parser.
// Found.Type is EOF when the input ran out before the construct was complete.
type SyntaxError struct {
	Expected string // construct the parser wanted, e.g. "STOP" or "statement"
	Found    Token
	Msg      string // replaces the expected/found wording when set
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Found.Line, e.Found.Col, e.detail())
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func (e *SyntaxError) detail() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Found.Type == EOF {
		return fmt.Sprintf("expected %s, got end of input", e.Expected)
	}
	return fmt.Sprintf("expected %s, got %s (%q)", e.Expected, e.Found.Type, e.Found.Lexeme)
}

// LexError is returned in strict mode for a character the lexer cannot use.
type LexError struct {
	Char rune
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.detail())
}

func (e *LexError) Unwrap() error { return ErrUnknownChar }

func (e *LexError) detail() string {
	return fmt.Sprintf("unknown character %q", e.Char)
}

// IsIncomplete reports whether err is a syntax error caused by running out of
// input, i.e. more text could still make the program valid.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Found.Type == EOF
}

// FormatError renders err with a numbered source snippet and a caret under the
// offending column. Errors that carry no position are returned as err.Error().
func FormatError(err error, src string) string {
	var se *SyntaxError
	if errors.As(err, &se) {
		return snippet(src, "SYNTAX ERROR", se.Found.Line, se.Found.Col, se.detail())
	}
	var le *LexError
	if errors.As(err, &le) {
		return snippet(src, "LEXICAL ERROR", le.Line, le.Col, le.detail())
	}
	return err.Error()
}

// snippet shows at most one line before and one line after the error line.
// Coordinates are 1-based and clamped to the source bounds.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
