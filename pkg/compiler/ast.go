package compiler

import "fmt"

// Program is the root of the AST: an ordered sequence of statements whose
// order is execution order.
type Program struct {
	Statements []Stmt
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// IntegerLit is a 64-bit integer constant.
type IntegerLit struct {
	Value int64
}

func (*IntegerLit) exprNode()        {}
func (e *IntegerLit) String() string { return fmt.Sprintf("%d", e.Value) }

// StringLit is a string constant. Value holds the content without quotes.
type StringLit struct {
	Value string
}

func (*StringLit) exprNode()        {}
func (e *StringLit) String() string { return fmt.Sprintf("%q", e.Value) }

// BoolLit is a TRUE or FALSE literal.
type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode() {}
func (e *BoolLit) String() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

// VarRef is a read of a named variable.
type VarRef struct {
	Name string
}

func (*VarRef) exprNode()        {}
func (e *VarRef) String() string { return e.Name }

// ArrayAccess reads one element of an array by index.
type ArrayAccess struct {
	Array string
	Index Expr
}

func (*ArrayAccess) exprNode()        {}
func (e *ArrayAccess) String() string { return fmt.Sprintf("%s{%s}", e.Array, e.Index) }

// BinaryExpr represents Left Op Right.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// BinaryOp is the closed set of binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpModulo:       "%",
	OpPower:        "^",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpGreater:      ">",
	OpLessEqual:    "<=",
	OpGreaterEqual: ">=",
	OpAnd:          "AND",
	OpOr:           "OR",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// VariableDecl binds a name to the value of an expression. Declaration and
// re-binding share the same surface syntax, so a later VariableDecl for an
// existing name overwrites it.
type VariableDecl struct {
	Name  string
	Value Expr
}

func (*VariableDecl) stmtNode() {}
func (s *VariableDecl) String() string {
	return fmt.Sprintf("VariableDecl(%s = %s)", s.Name, s.Value)
}

// ArrayDecl binds a name to an ordered list of element expressions.
type ArrayDecl struct {
	Name     string
	Elements []Expr
}

func (*ArrayDecl) stmtNode() {}
func (s *ArrayDecl) String() string {
	return fmt.Sprintf("ArrayDecl(%s, len=%d)", s.Name, len(s.Elements))
}

// PrintStmt outputs an ordered sequence of parts.
type PrintStmt struct {
	Parts []PrintPart
}

func (*PrintStmt) stmtNode() {}
func (s *PrintStmt) String() string {
	return fmt.Sprintf("PrintStmt(parts=%d)", len(s.Parts))
}

// PrintPart is one segment of a print statement: literal text or an
// expression whose value is printed.
type PrintPart interface {
	printPart()
	String() string
}

// PrintText is a literal string segment.
type PrintText struct {
	Text string
}

func (*PrintText) printPart()       {}
func (p *PrintText) String() string { return fmt.Sprintf("%q", p.Text) }

// PrintExpr is an expression segment evaluated at print time.
type PrintExpr struct {
	Expr Expr
}

func (*PrintExpr) printPart()       {}
func (p *PrintExpr) String() string { return fmt.Sprintf("{%s}", p.Expr) }

// LoopStmt is a count-controlled loop over an inclusive range.
type LoopStmt struct {
	Variable string
	Start    Expr
	End      Expr
	Body     []Stmt
}

func (*LoopStmt) stmtNode() {}
func (s *LoopStmt) String() string {
	return fmt.Sprintf("LoopStmt(%s, %s..%s, body=%d)", s.Variable, s.Start, s.End, len(s.Body))
}

// IfStmt is a conditional with an optional else branch. Else is nil when
// the source has no !? marker; an empty non-nil slice means an empty else
// block was present.
type IfStmt struct {
	Condition Expr
	Then      []Stmt
	Else      []Stmt
	HasElse   bool
}

func (*IfStmt) stmtNode() {}
func (s *IfStmt) String() string {
	if s.HasElse {
		return fmt.Sprintf("IfStmt(%s, then=%d, else=%d)", s.Condition, len(s.Then), len(s.Else))
	}
	return fmt.Sprintf("IfStmt(%s, then=%d)", s.Condition, len(s.Then))
}

// AssignOp is a compound assignment operator.
type AssignOp int

const (
	AssignMultiply AssignOp = iota // *=
	AssignPlus                     // +=
)

func (op AssignOp) String() string {
	if op == AssignMultiply {
		return "*="
	}
	return "+="
}

// AssignStmt updates an existing variable in place.
type AssignStmt struct {
	Name  string
	Op    AssignOp
	Value Expr
}

func (*AssignStmt) stmtNode() {}
func (s *AssignStmt) String() string {
	return fmt.Sprintf("AssignStmt(%s %s %s)", s.Name, s.Op, s.Value)
}
