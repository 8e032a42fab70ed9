package codegen

import (
	"strings"

	"nebc/pkg/compiler"
)

// genPrint emits the output code for one print statement. Literal segments
// are split on the >| marker: every non-empty remainder is printed from the
// string pool and each marker emits one explicit newline. Boolean values
// always render as TRUE/FALSE text.
func (g *Generator) genPrint(parts []compiler.PrintPart) error {
	for _, part := range parts {
		switch p := part.(type) {
		case *compiler.PrintText:
			segments := strings.Split(p.Text, ">|")
			for i, segment := range segments {
				if segment != "" {
					label := g.ctx.AddString(segment)
					g.line("    mov rsi, %s", label)
					g.line("    mov rdx, %d", len(segment))
					g.line("    call _nebula_print")
				}
				if i < len(segments)-1 {
					g.line("    mov rsi, newline")
					g.line("    mov rdx, 1")
					g.line("    call _nebula_print")
				}
			}

		case *compiler.PrintExpr:
			if b, ok := p.Expr.(*compiler.BoolLit); ok {
				g.genBoolPrint(b.Value)
				continue
			}
			if err := g.genExpressionPrint(p.Expr); err != nil {
				return err
			}
		}
	}
	return nil
}
