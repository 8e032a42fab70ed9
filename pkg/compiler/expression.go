package compiler

import (
	"fmt"
	"strconv"
)

// binaryOpFor maps an operator token to its BinaryOp, reporting false for
// tokens that are not binary operators.
func binaryOpFor(tt TokenType) (BinaryOp, bool) {
	switch tt {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSubtract, true
	case STAR:
		return OpMultiply, true
	case CARET:
		return OpPower, true
	case SLASH:
		return OpDivide, true
	case PERCENT:
		return OpModulo, true
	case EQUALS:
		return OpEqual, true
	case NOT_EQ:
		return OpNotEqual, true
	case LESS:
		return OpLess, true
	case GREATER:
		return OpGreater, true
	case LESS_EQ:
		return OpLessEqual, true
	case GREATER_EQ:
		return OpGreaterEqual, true
	case AND:
		return OpAnd, true
	case OR:
		return OpOr, true
	default:
		return 0, false
	}
}

// precedence returns the binding strength of op; higher binds tighter.
func precedence(op BinaryOp) int {
	switch op {
	case OpPower:
		return 7
	case OpMultiply, OpDivide, OpModulo:
		return 6
	case OpAdd, OpSubtract:
		return 5
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return 4
	case OpEqual, OpNotEqual:
		return 3
	case OpAnd:
		return 2
	default: // OpOr
		return 1
	}
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr implements precedence climbing. Left associativity comes
// from recursing into the right-hand side with precedence+1.
func (p *Parser) parseBinaryExpr(minPrec int) (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOpFor(p.peek().Type)
		if !ok {
			break
		}
		opPrec := precedence(op)
		if opPrec < minPrec {
			break
		}
		p.advance() // consume the operator

		right, err := p.parseBinaryExpr(opPrec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parsePrimary parses literals, variable references, and grouped
// expressions. A leading minus rewrites to (-1) * primary and a leading
// caret to 0 ^ primary; neither has a dedicated unary node.
func (p *Parser) parsePrimary() (Expr, error) {
	switch tok := p.peek(); tok.Type {
	case MINUS:
		p.advance()
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{
			Op:    OpMultiply,
			Left:  &IntegerLit{Value: -1},
			Right: expr,
		}, nil

	case CARET:
		p.advance()
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{
			Op:    OpPower,
			Left:  &IntegerLit{Value: 0},
			Right: expr,
		}, nil

	case INTEGER:
		p.advance()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, parseError("Invalid integer: " + tok.Lexeme)
		}
		return &IntegerLit{Value: n}, nil

	case STRING:
		p.advance()
		return &StringLit{Value: stringContent(tok.Lexeme)}, nil

	case TRUE, FALSE:
		p.advance()
		return &BoolLit{Value: tok.Type == TRUE}, nil

	case IDENTIFIER:
		p.advance()
		// name{expr} parses as a binary Add of the variable and the index,
		// not as an ArrayAccess node.
		if p.check(LBRACE) {
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(RBRACE); err != nil {
				return nil, err
			}
			return &BinaryExpr{
				Op:    OpAdd,
				Left:  &VarRef{Name: tok.Lexeme},
				Right: index,
			}, nil
		}
		return &VarRef{Name: tok.Lexeme}, nil

	case LBRACE:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RBRACE); err != nil {
			return nil, err
		}
		return expr, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, parseError(fmt.Sprintf("Expected expression, found %s", tok.Type))
	}
}
