package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes the flat token slice produced by Tokenize and builds an AST.
//
// Grammar:
//
//	program    = (statement NEWLINE*)* EOF
//	statement  = varDecl | arrayDecl | assignment | print | loop | if
//	varDecl    = IDENTIFIER expression
//	arrayDecl  = IDENTIFIER "[" (element ","?)* "]"
//	assignment = IDENTIFIER ("*=" | "+=") expression
//	print      = "!" (STRING | TRUE | FALSE | "{" expression "}")*
//	loop       = "@" IDENTIFIER "," expression ".." expression INDENT statement* DEDENT
//	if         = "?" expression INDENT statement* DEDENT ("!?" INDENT statement* DEDENT)?
//
// Tokens that do not begin a statement are skipped, matching the scanner's
// permissive treatment of unrecognized characters.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the Program AST from a token sequence.
func Parse(tokens []Token) (*Program, error) {
	p := NewParser(tokens)
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts}, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
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

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// expect consumes the current token if it matches tt, otherwise fails.
func (p *Parser) expect(tt TokenType) error {
	tok := p.advance()
	if tok.Type != tt {
		return parseError(fmt.Sprintf("Expected %s, found %s", tt, tok.Type))
	}
	return nil
}

func (p *Parser) skipNewlines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

// stringContent strips the surrounding quotes from a STRING token lexeme.
// A literal left unterminated at end of input has no closing quote to strip.
func stringContent(lexeme string) string {
	s := strings.TrimPrefix(lexeme, `"`)
	return strings.TrimSuffix(s, `"`)
}

func (p *Parser) parseStatements() ([]Stmt, error) {
	var stmts []Stmt

	for !p.isAtEnd() {
		p.skipNewlines()
		if p.isAtEnd() {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.advance()
		}

		p.skipNewlines()
	}

	return stmts, nil
}

// parseStatement dispatches on the leading token. It returns a nil statement
// (and nil error) for tokens that do not begin a statement.
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.peek().Type {
	case IDENTIFIER:
		return p.parseVariableOrAssignment()
	case PRINT:
		return p.parsePrint()
	case LOOP:
		return p.parseLoop()
	case IF:
		return p.parseIf()
	default:
		return nil, nil
	}
}

func (p *Parser) parseVariableOrAssignment() (Stmt, error) {
	name := p.advance().Lexeme

	if p.check(LBRACKET) {
		return p.parseArrayDecl(name)
	}

	switch p.peek().Type {
	case STAR_ASSIGN:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Name: name, Op: AssignMultiply, Value: value}, nil
	case PLUS_ASSIGN:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Name: name, Op: AssignPlus, Value: value}, nil
	default:
		// No operator: the remainder is the initializer of a (re)declaration.
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &VariableDecl{Name: name, Value: value}, nil
	}
}

// parseArrayDecl parses `name [ elem, elem, ... ]`. Elements are integer or
// string literals; a bare identifier is taken as a string. The `as <alias>`
// form is recognized and discarded, and anything else inside the brackets is
// skipped. Commas are optional separators.
func (p *Parser) parseArrayDecl(name string) (Stmt, error) {
	p.advance() // consume [

	var elements []Expr
	for !p.check(RBRACKET) && !p.isAtEnd() {
		tok := p.peek()
		switch tok.Type {
		case IDENTIFIER:
			p.advance()
			if tok.Lexeme == "as" {
				p.advance() // discard the alias name
			} else {
				elements = append(elements, &StringLit{Value: tok.Lexeme})
			}
		case STRING:
			p.advance()
			elements = append(elements, &StringLit{Value: stringContent(tok.Lexeme)})
		case INTEGER:
			p.advance()
			n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
			elements = append(elements, &IntegerLit{Value: n})
		default:
			p.advance()
		}

		if p.check(COMMA) {
			p.advance()
		}
	}

	if err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return &ArrayDecl{Name: name, Elements: elements}, nil
}

// parsePrint collects print parts until a newline: string literals (scanned
// for interpolation), boolean literals, and braced expressions.
func (p *Parser) parsePrint() (Stmt, error) {
	p.advance() // consume !
	var parts []PrintPart

	for !p.isAtEnd() && !p.check(NEWLINE) {
		switch tok := p.peek(); tok.Type {
		case STRING:
			p.advance()
			parts = append(parts, parseInterpolation(stringContent(tok.Lexeme))...)
		case TRUE, FALSE:
			p.advance()
			parts = append(parts, &PrintExpr{Expr: &BoolLit{Value: tok.Type == TRUE}})
		case LBRACE:
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(RBRACE); err != nil {
				return nil, err
			}
			parts = append(parts, &PrintExpr{Expr: expr})
		default:
			return &PrintStmt{Parts: parts}, nil
		}
	}

	return &PrintStmt{Parts: parts}, nil
}

// parseInterpolation splits a string literal on balanced {...} spans. Each
// span is re-tokenized and re-parsed as a standalone expression; a span that
// fails to parse falls back to its literal text, braces included, and an
// all-whitespace span produces nothing.
func parseInterpolation(s string) []PrintPart {
	var parts []PrintPart
	var text strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		if runes[i] != '{' {
			text.WriteRune(runes[i])
			continue
		}

		if text.Len() > 0 {
			parts = append(parts, &PrintText{Text: text.String()})
			text.Reset()
		}

		var content strings.Builder
		depth := 1
		for i+1 < len(runes) {
			i++
			switch runes[i] {
			case '{':
				depth++
				content.WriteRune(runes[i])
			case '}':
				depth--
				if depth > 0 {
					content.WriteRune(runes[i])
				}
			default:
				content.WriteRune(runes[i])
			}
			if depth == 0 {
				break
			}
		}

		if strings.TrimSpace(content.String()) == "" {
			continue
		}
		expr, err := parseInterpolationExpr(content.String())
		if err != nil {
			parts = append(parts, &PrintText{Text: "{" + content.String() + "}"})
			continue
		}
		parts = append(parts, &PrintExpr{Expr: expr})
	}

	if text.Len() > 0 {
		parts = append(parts, &PrintText{Text: text.String()})
	}
	return parts
}

// parseInterpolationExpr runs the scanner and expression parser over an
// interpolation span, filtering out layout tokens that cannot appear inside
// an expression.
func parseInterpolationExpr(src string) (Expr, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, parseError("Failed to tokenize expression in interpolation")
	}

	filtered := tokens[:0:0]
	for _, tok := range tokens {
		switch tok.Type {
		case NEWLINE, INDENT, DEDENT:
		default:
			filtered = append(filtered, tok)
		}
	}
	if len(filtered) == 0 {
		return nil, parseError("Empty expression in interpolation")
	}

	return NewParser(filtered).parseExpression()
}

// parseLoop parses `@ var , start .. end` followed by an indented body.
func (p *Parser) parseLoop() (Stmt, error) {
	p.advance() // consume @
	variable := p.advance().Lexeme
	if err := p.expect(COMMA); err != nil {
		return nil, err
	}

	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RANGE); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &LoopStmt{Variable: variable, Start: start, End: end, Body: body}, nil
}

// parseIf parses `? condition` with an indented then-block and an optional
// `!?` else marker with its own indented block.
func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // consume ?
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Condition: condition, Then: then}
	if p.check(ELSE) {
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		stmt.HasElse = true
	}

	return stmt, nil
}

// parseBlock consumes newlines, then an INDENT-delimited statement sequence.
// A missing INDENT yields an empty block rather than an error.
func (p *Parser) parseBlock() ([]Stmt, error) {
	p.skipNewlines()

	var body []Stmt
	if !p.check(INDENT) {
		return body, nil
	}
	p.advance() // consume INDENT

	for !p.check(DEDENT) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		} else {
			p.advance()
		}
	}
	if p.check(DEDENT) {
		p.advance()
	}

	return body, nil
}
