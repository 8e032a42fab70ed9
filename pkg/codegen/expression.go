package codegen

import "nebc/pkg/compiler"

// genExpression emits code that leaves the expression's value as exactly one
// word on top of the machine stack. Composite expressions assemble by
// concatenating their sub-expressions' code.
func (g *Generator) genExpression(expr compiler.Expr) error {
	switch e := expr.(type) {
	case *compiler.IntegerLit:
		g.line("    push %d", e.Value)
		return nil

	case *compiler.BoolLit:
		if e.Value {
			g.line("    push 1")
		} else {
			g.line("    push 0")
		}
		return nil

	case *compiler.StringLit:
		// String values are addresses into the data section.
		label := g.ctx.AddString(e.Value)
		g.line("    mov rax, %s", label)
		g.line("    push rax")
		return nil

	case *compiler.VarRef:
		address, ok := g.ctx.VariableAddress(e.Name)
		if !ok {
			return &compiler.UndefinedVariableError{Name: e.Name}
		}
		g.line("    mov rax, [%s]", address)
		g.line("    push rax")
		return nil

	case *compiler.ArrayAccess:
		return g.genArrayAccess(e)

	case *compiler.BinaryExpr:
		return g.genBinary(e)

	default:
		return nil
	}
}

// genArrayAccess loads one word from base + index*8. No bounds check is
// performed; out-of-range access is undefined behavior.
func (g *Generator) genArrayAccess(e *compiler.ArrayAccess) error {
	address, ok := g.ctx.VariableAddress(e.Array)
	if !ok {
		return &compiler.UndefinedVariableError{Name: e.Array}
	}
	if err := g.genExpression(e.Index); err != nil {
		return err
	}
	g.line("    pop rbx")
	g.line("    mov rax, [%s + rbx * 8]", address)
	g.line("    push rax")
	return nil
}

// genBinary evaluates the right operand first so that after both pushes the
// left value pops into rax and the right into rbx, keeping operand identity
// straight for the non-commutative operators.
func (g *Generator) genBinary(e *compiler.BinaryExpr) error {
	if err := g.genExpression(e.Right); err != nil {
		return err
	}
	if err := g.genExpression(e.Left); err != nil {
		return err
	}
	g.line("    pop rax")
	g.line("    pop rbx")

	switch e.Op {
	case compiler.OpAdd:
		g.line("    add rax, rbx")
		g.line("    push rax")
	case compiler.OpSubtract:
		g.line("    sub rax, rbx")
		g.line("    push rax")
	case compiler.OpMultiply:
		g.line("    imul rax, rbx")
		g.line("    push rax")
	case compiler.OpDivide:
		g.line("    xor rdx, rdx")
		g.line("    idiv rbx")
		g.line("    push rax")
	case compiler.OpModulo:
		g.line("    xor rdx, rdx")
		g.line("    idiv rbx")
		g.line("    push rdx")
	case compiler.OpPower:
		// Iterative multiply: result starts at 1, one multiply per
		// decrement of the exponent. Exponent 0 yields 1; negative
		// exponents do not terminate.
		g.line("    mov rcx, rbx")
		g.line("    mov rbx, rax")
		g.line("    mov rax, 1")
		g.line("    test rcx, rcx")
		g.line("    jz .power_done")
		g.line(".power_loop:")
		g.line("    imul rax, rbx")
		g.line("    dec rcx")
		g.line("    jnz .power_loop")
		g.line(".power_done:")
		g.line("    push rax")
	case compiler.OpEqual:
		g.genCompare("sete")
	case compiler.OpNotEqual:
		g.genCompare("setne")
	case compiler.OpLess:
		g.genCompare("setl")
	case compiler.OpGreater:
		g.genCompare("setg")
	case compiler.OpLessEqual:
		g.genCompare("setle")
	case compiler.OpGreaterEqual:
		g.genCompare("setge")
	case compiler.OpAnd:
		// Operands are already canonical 0/1 words.
		g.line("    and rax, rbx")
		g.line("    push rax")
	case compiler.OpOr:
		g.line("    or rax, rbx")
		g.line("    push rax")
	}

	return nil
}

// genCompare materializes a comparison flag as a canonical 0/1 word.
func (g *Generator) genCompare(set string) {
	g.line("    cmp rax, rbx")
	g.line("    %s al", set)
	g.line("    movzx rax, al")
	g.line("    push rax")
}

// genExpressionPrint emits code that prints an expression's value, choosing
// the string or numeric runtime routine by expression form. Simple forms
// load registers directly; everything else is evaluated through the stack
// and printed as a number.
func (g *Generator) genExpressionPrint(expr compiler.Expr) error {
	switch e := expr.(type) {
	case *compiler.VarRef:
		address, ok := g.ctx.VariableAddress(e.Name)
		if !ok {
			return &compiler.UndefinedVariableError{Name: e.Name}
		}
		g.line("    mov rax, [%s]", address)
		g.line("    call _nebula_print_number")
		return nil

	case *compiler.IntegerLit:
		g.line("    mov rax, %d", e.Value)
		g.line("    call _nebula_print_number")
		return nil

	case *compiler.StringLit:
		label := g.ctx.AddString(e.Value)
		g.line("    mov rsi, %s", label)
		g.line("    mov rdx, %d", len(e.Value))
		g.line("    call _nebula_print")
		return nil

	case *compiler.BoolLit:
		g.genBoolPrint(e.Value)
		return nil

	default:
		if err := g.genExpression(expr); err != nil {
			return err
		}
		g.line("    pop rax")
		g.line("    call _nebula_print_number")
		return nil
	}
}

// genBoolPrint prints the canonical TRUE/FALSE text, never 0/1.
func (g *Generator) genBoolPrint(value bool) {
	text := "FALSE"
	if value {
		text = "TRUE"
	}
	label := g.ctx.AddString(text)
	g.line("    mov rsi, %s", label)
	g.line("    mov rdx, %d", len(text))
	g.line("    call _nebula_print")
}
