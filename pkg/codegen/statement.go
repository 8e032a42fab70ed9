package codegen

import "nebc/pkg/compiler"

// genStatement dispatches one statement to its generator.
func (g *Generator) genStatement(stmt compiler.Stmt) error {
	switch s := stmt.(type) {
	case *compiler.VariableDecl:
		return g.genVariableDecl(s)
	case *compiler.ArrayDecl:
		return g.genArrayDecl(s)
	case *compiler.PrintStmt:
		return g.genPrint(s.Parts)
	case *compiler.LoopStmt:
		return g.genLoop(s)
	case *compiler.IfStmt:
		return g.genIf(s)
	case *compiler.AssignStmt:
		return g.genAssign(s)
	default:
		return nil
	}
}

// genVariableDecl registers the variable and stores its initial value.
// Integer literal, string literal, and variable-copy initializers move
// directly; anything else is evaluated through the stack.
func (g *Generator) genVariableDecl(s *compiler.VariableDecl) error {
	address := g.ctx.RegisterVariable(s.Name, compiler.TypeInteger)

	switch v := s.Value.(type) {
	case *compiler.IntegerLit:
		g.line("    mov qword [%s], %d", address, v.Value)
	case *compiler.StringLit:
		label := g.ctx.AddString(v.Value)
		g.line("    mov rax, %s", label)
		g.line("    mov [%s], rax", address)
	case *compiler.VarRef:
		src, ok := g.ctx.VariableAddress(v.Name)
		if !ok {
			return &compiler.UndefinedVariableError{Name: v.Name}
		}
		g.line("    mov rax, [%s]", src)
		g.line("    mov [%s], rax", address)
	default:
		if err := g.genExpression(s.Value); err != nil {
			return err
		}
		g.line("    pop rax")
		g.line("    mov [%s], rax", address)
	}
	return nil
}

// genArrayDecl reserves the array's name and initializes the first element
// only; the single word of storage is shared with scalar variables.
func (g *Generator) genArrayDecl(s *compiler.ArrayDecl) error {
	address := g.ctx.RegisterVariable(s.Name, compiler.TypeInteger)

	if len(s.Elements) == 0 {
		return nil
	}
	switch v := s.Elements[0].(type) {
	case *compiler.IntegerLit:
		g.line("    mov qword [%s], %d", address, v.Value)
	case *compiler.StringLit:
		label := g.ctx.AddString(v.Value)
		g.line("    mov rax, %s", label)
		g.line("    mov [%s], rax", address)
	default:
		// Composite element initializers are not emitted.
	}
	return nil
}

// genAssign emits a read-modify-write: load the current value, evaluate the
// right-hand side, apply the compound operator, store back.
func (g *Generator) genAssign(s *compiler.AssignStmt) error {
	address, ok := g.ctx.VariableAddress(s.Name)
	if !ok {
		return &compiler.UndefinedVariableError{Name: s.Name}
	}

	g.line("    mov rax, [%s]", address)
	if err := g.genExpression(s.Value); err != nil {
		return err
	}
	g.line("    pop rbx")

	switch s.Op {
	case compiler.AssignMultiply:
		g.line("    imul rax, rbx")
	case compiler.AssignPlus:
		g.line("    add rax, rbx")
	}
	g.line("    mov [%s], rax", address)
	return nil
}

// genLoop emits a count-controlled loop. The range is inclusive: the exit
// jump fires only when the loop variable is strictly greater than end.
func (g *Generator) genLoop(s *compiler.LoopStmt) error {
	loopLabel := g.ctx.NextLabel()
	endLabel := g.ctx.NextLabel()
	address := g.ctx.RegisterVariable(s.Variable, compiler.TypeInteger)

	// Initialize the loop variable.
	switch v := s.Start.(type) {
	case *compiler.IntegerLit:
		g.line("    mov qword [%s], %d", address, v.Value)
	case *compiler.VarRef:
		src, ok := g.ctx.VariableAddress(v.Name)
		if !ok {
			return &compiler.UndefinedVariableError{Name: v.Name}
		}
		g.line("    mov rax, [%s]", src)
		g.line("    mov [%s], rax", address)
	default:
		if err := g.genExpression(s.Start); err != nil {
			return err
		}
		g.line("    pop rax")
		g.line("    mov [%s], rax", address)
	}

	// Condition check at the top of each iteration.
	g.line("%s:", loopLabel)
	g.line("    mov rax, [%s]", address)

	switch v := s.End.(type) {
	case *compiler.IntegerLit:
		g.line("    cmp rax, %d", v.Value)
	case *compiler.VarRef:
		src, ok := g.ctx.VariableAddress(v.Name)
		if !ok {
			return &compiler.UndefinedVariableError{Name: v.Name}
		}
		g.line("    mov rbx, [%s]", src)
		g.line("    cmp rax, rbx")
	default:
		if err := g.genExpression(s.End); err != nil {
			return err
		}
		g.line("    pop rbx")
		g.line("    cmp rax, rbx")
	}
	g.line("    jg %s", endLabel)

	for _, stmt := range s.Body {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}

	g.line("    inc qword [%s]", address)
	g.line("    jmp %s", loopLabel)
	g.line("%s:", endLabel)
	return nil
}

// genIf evaluates the condition and branches on zero. Both the else and end
// labels are allocated even when no else branch exists.
func (g *Generator) genIf(s *compiler.IfStmt) error {
	elseLabel := g.ctx.NextLabel()
	endLabel := g.ctx.NextLabel()

	if err := g.genExpression(s.Condition); err != nil {
		return err
	}
	g.line("    pop rax")
	g.line("    test rax, rax")

	if s.HasElse {
		g.line("    jz %s", elseLabel)
	} else {
		g.line("    jz %s", endLabel)
	}

	for _, stmt := range s.Then {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	g.line("    jmp %s", endLabel)

	if s.HasElse {
		g.line("%s:", elseLabel)
		for _, stmt := range s.Else {
			if err := g.genStatement(stmt); err != nil {
				return err
			}
		}
	}

	g.line("%s:", endLabel)
	return nil
}
