package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	INTEGER    // decimal integer literal, possibly with a merged leading minus
	STRING     // string literal "..."
	TRUE       // boolean literal TRUE
	FALSE      // boolean literal FALSE

	// Keywords (single punctuation characters)
	PRINT // !
	LOOP  // @
	IF    // ?
	ELSE  // !?

	// Word operators
	AND // AND
	OR  // OR

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^

	// Comparison operators
	EQUALS     // ==
	NOT_EQ     // != (reserved; the scanner never produces it)
	LESS       // <
	GREATER    // >
	LESS_EQ    // <=
	GREATER_EQ // >=

	// Compound assignment
	STAR_ASSIGN // *=
	PLUS_ASSIGN // +=

	// Paired delimiters
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]

	// Punctuation
	COLON // :
	COMMA // ,
	RANGE // ..

	// Layout markers
	NEWLINE // end of line, or the >| marker
	INDENT  // block opened by deeper indentation
	DEDENT  // block closed by shallower indentation
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	INTEGER:     "INTEGER",
	STRING:      "STRING",
	TRUE:        "TRUE",
	FALSE:       "FALSE",
	PRINT:       "PRINT",
	LOOP:        "LOOP",
	IF:          "IF",
	ELSE:        "ELSE",
	AND:         "AND",
	OR:          "OR",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	PERCENT:     "PERCENT",
	CARET:       "CARET",
	EQUALS:      "EQUALS",
	NOT_EQ:      "NOT_EQ",
	LESS:        "LESS",
	GREATER:     "GREATER",
	LESS_EQ:     "LESS_EQ",
	GREATER_EQ:  "GREATER_EQ",
	STAR_ASSIGN: "STAR_ASSIGN",
	PLUS_ASSIGN: "PLUS_ASSIGN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	COLON:       "COLON",
	COMMA:       "COMMA",
	RANGE:       "RANGE",
	NEWLINE:     "NEWLINE",
	INDENT:      "INDENT",
	DEDENT:      "DEDENT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by Tokenize.
// Start and End are rune offsets into the source; Lexeme is the raw
// matched text (for STRING tokens this includes the quotes).
type Token struct {
	Type   TokenType
	Start  int
	End    int
	Lexeme string
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-14q  [%d:%d]", t.Type, t.Lexeme, t.Start, t.End)
}
