package compiler

import (
	"strconv"
	"unicode"
)

// Lexer holds all mutable state for a single scanning pass over src.
// Indentation is tracked on a stack of levels so that nested blocks emit
// matching INDENT/DEDENT pairs; the stack always keeps a base level 0.
type Lexer struct {
	src     []rune
	pos     int // index of the next rune to consume
	indents []int
	tokens  []Token
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), indents: []int{0}}
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
	return r
}

func (l *Lexer) emit(tt TokenType, start int, lexeme string) {
	l.tokens = append(l.tokens, Token{Type: tt, Start: start, End: l.pos, Lexeme: lexeme})
}

func (l *Lexer) text(start int) string {
	return string(l.src[start:l.pos])
}

// scanNewline emits the NEWLINE token and then measures the indentation of
// the following line: every 4 spaces count as one level, every tab counts as
// one level on its own. A deeper line pushes a level and emits INDENT; a
// shallower line pops levels, emitting one DEDENT per level closed.
func (l *Lexer) scanNewline(start int) {
	l.emit(NEWLINE, start, "\n")

	level := 0
	lineStart := l.pos
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ':
			l.advance()
			if (l.pos-lineStart)%4 == 0 {
				level++
			}
		case '\t':
			l.advance()
			level++
		default:
			goto measured
		}
	}
measured:
	current := l.indents[len(l.indents)-1]
	if level > current {
		l.tokens = append(l.tokens, Token{Type: INDENT, Start: lineStart, End: l.pos, Lexeme: "indent"})
		l.indents = append(l.indents, level)
	} else if level < current {
		for len(l.indents) > 0 && l.indents[len(l.indents)-1] > level {
			l.tokens = append(l.tokens, Token{Type: DEDENT, Start: lineStart, End: l.pos, Lexeme: "dedent"})
			l.indents = l.indents[:len(l.indents)-1]
		}
	}
}

// scanString collects a double-quoted string literal. The raw lexeme keeps
// the quotes; no escape processing happens here. A raw newline before the
// closing quote is a lexical error.
func (l *Lexer) scanString(start int) error {
	l.advance() // consume opening "
	for l.pos < len(l.src) {
		r := l.advance()
		if r == '"' {
			break
		}
		if r == '\n' {
			return lexError("Unterminated string")
		}
	}
	l.emit(STRING, start, l.text(start))
	return nil
}

// scanIdent collects an identifier, reclassifying the reserved words
// AND/OR/TRUE/FALSE.
func (l *Lexer) scanIdent(start int) {
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := l.text(start)
	tt := IDENTIFIER
	switch lexeme {
	case "OR":
		tt = OR
	case "AND":
		tt = AND
	case "TRUE":
		tt = TRUE
	case "FALSE":
		tt = FALSE
	}
	l.emit(tt, start, lexeme)
}

// scanNumber collects a decimal integer literal. When the previous emitted
// token is a bare minus operator it is retracted and merged into a single
// negative literal whose span begins at the minus sign.
func (l *Lexer) scanNumber(start int) error {
	lexeme := ""
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Type == MINUS {
		start = l.tokens[n-1].Start
		l.tokens = l.tokens[:n-1]
		lexeme = "-"
	}

	digitStart := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	lexeme += l.text(digitStart)

	if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
		return lexError("Invalid integer: " + lexeme)
	}
	l.emit(INTEGER, start, lexeme)
	return nil
}

// ifNext emits a two-character token when the next rune matches, otherwise
// the single-character fallback.
func (l *Lexer) ifNext(next rune, two TokenType, twoLex string, one TokenType, oneLex string, start int) {
	if l.peek() == next {
		l.advance()
		l.emit(two, start, twoLex)
		return
	}
	l.emit(one, start, oneLex)
}

// Tokenize scans src and returns the full token sequence. Unrecognized
// characters are skipped without error; open indentation levels are closed
// with zero-width DEDENT tokens at end of input.
func Tokenize(src string) ([]Token, error) {
	l := newLexer(src)

	for l.pos < len(l.src) {
		start := l.pos
		ch := l.peek()

		switch {
		case ch == ' ':
			for l.peek() == ' ' {
				l.advance()
			}
		case ch == '\t', ch == '\r':
			l.advance()
		case ch == '\n':
			l.advance()
			l.scanNewline(start)
		case ch == '"':
			if err := l.scanString(start); err != nil {
				return nil, err
			}
		case unicode.IsLetter(ch) || ch == '_':
			l.advance()
			l.scanIdent(start)
		case unicode.IsDigit(ch):
			if err := l.scanNumber(start); err != nil {
				return nil, err
			}
		default:
			l.advance()
			switch ch {
			case '[':
				l.emit(LBRACKET, start, "[")
			case ']':
				l.emit(RBRACKET, start, "]")
			case ':':
				l.emit(COLON, start, ":")
			case '!':
				l.ifNext('?', ELSE, "!?", PRINT, "!", start)
			case '?':
				l.emit(IF, start, "?")
			case '@':
				l.emit(LOOP, start, "@")
			case '>':
				if l.peek() == '|' {
					l.advance()
					l.emit(NEWLINE, start, ">|")
				} else {
					l.ifNext('=', GREATER_EQ, ">=", GREATER, ">", start)
				}
			case '<':
				l.ifNext('=', LESS_EQ, "<=", LESS, "<", start)
			case '=':
				// A bare = is not an operator in this language; it lexes
				// as an identifier and the parser skips it.
				l.ifNext('=', EQUALS, "==", IDENTIFIER, "=", start)
			case '+':
				l.ifNext('=', PLUS_ASSIGN, "+=", PLUS, "+", start)
			case '-':
				l.emit(MINUS, start, "-")
			case '*':
				l.ifNext('=', STAR_ASSIGN, "*=", STAR, "*", start)
			case '/':
				l.emit(SLASH, start, "/")
			case '^':
				l.emit(CARET, start, "^")
			case '.':
				// A lone dot is dropped; only ".." forms a token.
				if l.peek() == '.' {
					l.advance()
					l.emit(RANGE, start, "..")
				}
			case '{':
				l.emit(LBRACE, start, "{")
			case '}':
				l.emit(RBRACE, start, "}")
			case '(':
				l.emit(LPAREN, start, "(")
			case ')':
				l.emit(RPAREN, start, ")")
			case ',':
				l.emit(COMMA, start, ",")
			case '%':
				l.emit(PERCENT, start, "%")
			default:
				// Anything else is skipped silently.
			}
		}
	}

	// Close any indentation levels still open at end of input.
	for len(l.indents) > 1 {
		l.tokens = append(l.tokens, Token{Type: DEDENT, Start: l.pos, End: l.pos, Lexeme: "dedent"})
		l.indents = l.indents[:len(l.indents)-1]
	}

	return l.tokens, nil
}
