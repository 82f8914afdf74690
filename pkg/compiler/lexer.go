package compiler

import (
	"iter"
	"unicode"
)

// keywords maps source text to its keyword TokenType. Lookup is case-sensitive.
var keywords = map[string]TokenType{
	"make":                    MAKE,
	"be":                      BE,
	"STOP":                    STOP,
	"maybe":                   IF,
	"letsdothisinstead":       ELSE,
	"ENDMAYBE":                ENDIF,
	"keeponswimming":          WHILE,
	"STOPSWIMMING":            ENDWHILE,
	"SCREAM":                  PRINT,
	"QUIET":                   ENDPRINT,
	"number":                  TYPE_NUMBER,
	"string":                  TYPE_STRING,
	"notalmostthesamethesame": EQUALS,
	"tinyerthan":              LESS,
	"oppositeoftinyerthan":    GREATER,
}

// SkippedChar is a character the lexer did not recognise and dropped.
type SkippedChar struct {
	Char rune
	Line int
	Col  int
}

// Lexer holds all mutable state for a single scanning pass over src.
// The cursor only moves forward; scan the same text again with a new Lexer.
type Lexer struct {
	src     []rune
	pos     int // index of the next rune to consume
	line    int // current 1-based source line
	col     int // current 1-based column
	skipped []SkippedChar
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// scanWord collects an identifier or keyword.
// The first letter must still be at l.peek().
func (l *Lexer) scanWord() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
}

// scanNumber collects a run of decimal digits. No sign, no fraction.
func (l *Lexer) scanNumber() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: NUMBER, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}
}

// scanString collects the text between a pair of double quotes. There are no
// escapes; a missing closing quote ends the literal at end of input.
func (l *Lexer) scanString() Token {
	line, col := l.line, l.col
	l.advance() // consume opening "
	start := l.pos
	for l.pos < len(l.src) && l.peek() != '"' {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	if l.pos < len(l.src) {
		l.advance() // consume closing "
	}
	return Token{Type: STRING, Lexeme: lexeme, Line: line, Col: col}
}

// Next returns the next token, or false once the input is exhausted.
// Characters that cannot start a token are recorded and skipped.
func (l *Lexer) Next() (Token, bool) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{}, false
		}

		ch := l.peek()
		line, col := l.line, l.col

		switch {
		case isDigit(ch):
			return l.scanNumber(), true
		case unicode.IsLetter(ch):
			return l.scanWord(), true
		case ch == '"':
			return l.scanString(), true
		}

		l.advance() // consume the character before the switch
		switch ch {
		case '(':
			return Token{LPAREN, "(", line, col}, true
		case ')':
			return Token{RPAREN, ")", line, col}, true
		case '{':
			return Token{LBRACE, "{", line, col}, true
		case '}':
			return Token{RBRACE, "}", line, col}, true
		case ':':
			return Token{COLON, ":", line, col}, true
		case '+':
			return Token{PLUS, "+", line, col}, true
		default:
			l.skipped = append(l.skipped, SkippedChar{Char: ch, Line: line, Col: col})
		}
	}
}

// All returns an iterator over the remaining tokens. It shares the lexer's
// cursor, so tokens consumed through it are not seen again by Next.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Skipped reports the characters dropped so far, in source order.
func (l *Lexer) Skipped() []SkippedChar {
	return l.skipped
}

// Lex tokenises src and returns every token. It never fails; use a Lexer
// directly to inspect skipped characters.
func Lex(src string) []Token {
	var tokens []Token
	for tok := range NewLexer(src).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
