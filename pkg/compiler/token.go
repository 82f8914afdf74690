package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: returned by the parser past the last token

	// Literals
	IDENTIFIER // variable name
	NUMBER     // decimal digit run
	STRING     // string literal "..." (Lexeme holds the contents)

	// Keywords
	MAKE        // "make"
	BE          // "be"
	STOP        // "STOP"
	IF          // "maybe"
	ELSE        // "letsdothisinstead"
	ENDIF       // "ENDMAYBE"
	WHILE       // "keeponswimming"
	ENDWHILE    // "STOPSWIMMING"
	PRINT       // "SCREAM"
	ENDPRINT    // "QUIET"
	TYPE_NUMBER // "number"
	TYPE_STRING // "string"

	// Comparison keywords
	EQUALS  // "notalmostthesamethesame"
	LESS    // "tinyerthan"
	GREATER // "oppositeoftinyerthan"

	// Paired delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	// Punctuation and operators
	COLON // :
	PLUS  // +
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	MAKE:        "MAKE",
	BE:          "BE",
	STOP:        "STOP",
	IF:          "IF",
	ELSE:        "ELSE",
	ENDIF:       "ENDIF",
	WHILE:       "WHILE",
	ENDWHILE:    "ENDWHILE",
	PRINT:       "PRINT",
	ENDPRINT:    "ENDPRINT",
	TYPE_NUMBER: "TYPE_NUMBER",
	TYPE_STRING: "TYPE_STRING",
	EQUALS:      "EQUALS",
	LESS:        "LESS",
	GREATER:     "GREATER",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	COLON:       "COLON",
	PLUS:        "PLUS",
}

// Compile-time check that every TokenType has a name.
var _ = tokenNames[PLUS]

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // source text; for STRING the text between the quotes
	Line   int    // 1-based source line
	Col    int    // 1-based column, counted in runes
}

func (t Token) String() string {
	return fmt.Sprintf("%-12s %-14q  line %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}

// describe returns the wording used for tt in "expected ..." diagnostics:
// the source spelling for keywords and punctuation, a class name otherwise.
func describe(tt TokenType) string {
	switch tt {
	case EOF:
		return "end of input"
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number literal"
	case STRING:
		return "string literal"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case LBRACE:
		return "'{'"
	case RBRACE:
		return "'}'"
	case COLON:
		return "':'"
	case PLUS:
		return "'+'"
	}
	for word, kw := range keywords {
		if kw == tt {
			return "'" + word + "'"
		}
	}
	return tt.String()
}
