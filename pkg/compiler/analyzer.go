package compiler

import "fmt"

// Analyzer performs semantic analysis over the AST: type inference for
// declarations, compatibility checks for binary operators and control flow,
// and existence checks for every referenced name.
type Analyzer struct {
	symbols map[string]Type
	errs    []error
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: make(map[string]Type)}
}

// Analyze walks the program once and returns the first semantic error
// found, or nil. Findings are accumulated internally but all except the
// first are discarded.
func Analyze(program *Program) error {
	a := NewAnalyzer()
	for _, stmt := range program.Statements {
		a.visitStatement(stmt)
	}
	if len(a.errs) > 0 {
		return a.errs[0]
	}
	return nil
}

func (a *Analyzer) visitStatement(stmt Stmt) {
	switch s := stmt.(type) {
	case *VariableDecl:
		valueType := a.visitExpression(s.Value)
		a.symbols[s.Name] = valueType

	case *ArrayDecl:
		for _, elem := range s.Elements {
			a.visitExpression(elem)
		}
		// Arrays are stored as word slots; the name carries Integer type.
		a.symbols[s.Name] = TypeInteger

	case *PrintStmt:
		for _, part := range s.Parts {
			if pe, ok := part.(*PrintExpr); ok {
				a.visitExpression(pe.Expr)
			}
		}

	case *LoopStmt:
		startType := a.visitExpression(s.Start)
		endType := a.visitExpression(s.End)
		if !startType.Compatible(TypeInteger) {
			a.errs = append(a.errs, &TypeError{Message: "Loop start must be integer"})
		}
		if !endType.Compatible(TypeInteger) {
			a.errs = append(a.errs, &TypeError{Message: "Loop end must be integer"})
		}

		// The loop variable is visible only inside the body.
		a.symbols[s.Variable] = TypeInteger
		for _, stmt := range s.Body {
			a.visitStatement(stmt)
		}
		delete(a.symbols, s.Variable)

	case *IfStmt:
		condType := a.visitExpression(s.Condition)
		if !condType.Compatible(TypeBoolean) {
			a.errs = append(a.errs, &TypeError{Message: "If condition must be boolean"})
		}
		for _, stmt := range s.Then {
			a.visitStatement(stmt)
		}
		for _, stmt := range s.Else {
			a.visitStatement(stmt)
		}

	case *AssignStmt:
		a.visitExpression(s.Value)
		// The target must exist; its recorded type is not checked against
		// the new value's type.
		if _, ok := a.symbols[s.Name]; !ok {
			a.errs = append(a.errs, &UndefinedVariableError{Name: s.Name})
		}
	}
}

// visitExpression validates an expression and returns its resultant type.
func (a *Analyzer) visitExpression(expr Expr) Type {
	switch e := expr.(type) {
	case *IntegerLit:
		return TypeInteger
	case *StringLit:
		return TypeString
	case *BoolLit:
		return TypeBoolean
	case *VarRef:
		if t, ok := a.symbols[e.Name]; ok {
			return t
		}
		a.errs = append(a.errs, &UndefinedVariableError{Name: e.Name})
		return TypeUnknown
	case *ArrayAccess:
		a.visitExpression(e.Index)
		if _, ok := a.symbols[e.Array]; !ok {
			a.errs = append(a.errs, &UndefinedVariableError{Name: e.Array})
		}
		return TypeInteger
	case *BinaryExpr:
		leftType := a.visitExpression(e.Left)
		rightType := a.visitExpression(e.Right)

		if !leftType.Compatible(rightType) {
			a.errs = append(a.errs, &TypeMismatchError{
				Details: fmt.Sprintf("%s %s %s", leftType, e.Op, rightType),
			})
		}

		switch e.Op {
		case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpAnd, OpOr:
			return TypeBoolean
		default:
			return leftType
		}
	default:
		return TypeUnknown
	}
}
