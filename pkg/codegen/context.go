package codegen

import (
	"fmt"
	"sort"
	"strings"

	"nebc/pkg/compiler"
)

// Context is the shared mutable state for one code generation pass: the
// string pool, the control-flow label counter, and the variable type and
// address tables. It lives for exactly one compilation.
type Context struct {
	stringPool   map[string]string // content -> data label
	labelCounter int
	varTypes     map[string]compiler.Type
	varAddrs     map[string]string // name -> bss label
}

func NewContext() *Context {
	return &Context{
		stringPool: make(map[string]string),
		varTypes:   make(map[string]compiler.Type),
		varAddrs:   make(map[string]string),
	}
}

// AddString returns a stable data label for a string literal, pooling it on
// first use. The empty string maps to the fixed empty_str label without
// entering the pool; the boolean display texts get fixed labels; everything
// else is numbered by pool position.
func (c *Context) AddString(s string) string {
	if s == "" {
		return "empty_str"
	}
	if label, ok := c.stringPool[s]; ok {
		return label
	}

	var label string
	switch s {
	case "TRUE":
		label = "str_true"
	case "FALSE":
		label = "str_false"
	default:
		label = fmt.Sprintf("str_%d", len(c.stringPool))
	}
	c.stringPool[s] = label
	return label
}

// RegisterVariable records a variable's type and returns its storage label.
// The label depends on the name alone, so re-registration is idempotent on
// the address and overwrites the type.
func (c *Context) RegisterVariable(name string, t compiler.Type) string {
	address := "var_" + name
	c.varTypes[name] = t
	c.varAddrs[name] = address
	return address
}

// VariableAddress looks up the storage label of a registered variable.
func (c *Context) VariableAddress(name string) (string, bool) {
	addr, ok := c.varAddrs[name]
	return addr, ok
}

// VariableType looks up the recorded type of a registered variable.
func (c *Context) VariableType(name string) (compiler.Type, bool) {
	t, ok := c.varTypes[name]
	return t, ok
}

// NextLabel returns a fresh control-flow label. The counter is never reset
// within a compilation.
func (c *Context) NextLabel() string {
	label := fmt.Sprintf("L_%d", c.labelCounter)
	c.labelCounter++
	return label
}

// DataSection emits the static data section: all pooled strings in label
// order, then the fixed newline, empty-string, and minus-sign constants.
// Label-sorted output keeps builds reproducible.
func (c *Context) DataSection() string {
	var b strings.Builder
	b.WriteString("section .data\n")

	labels := make([]string, 0, len(c.stringPool))
	byLabel := make(map[string]string, len(c.stringPool))
	for content, label := range c.stringPool {
		labels = append(labels, label)
		byLabel[label] = content
	}
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Fprintf(&b, "%s: db \"%s\", 0\n", label, escapeData(byLabel[label]))
	}

	b.WriteString("newline: db 10, 0\n")
	b.WriteString("empty_str: db 0\n")
	b.WriteString("minus_sign: db \"-\", 0\n")
	return b.String()
}

// escapeData escapes a string for a db directive.
func escapeData(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// BssSection emits the reserved storage section: the fixed runtime cells
// used by the protection layer, then one quadword per variable collected
// from the AST. Collection walks variable declarations and loop headers
// only; array declarations are not collected here even though
// RegisterVariable handles them.
func (c *Context) BssSection(program *compiler.Program) string {
	var b strings.Builder
	b.WriteString("section .bss\n")
	b.WriteString("    quantum_seed: resq 1\n")
	b.WriteString("    critical_section_1: resq 1\n")
	b.WriteString("    critical_section_2: resq 1\n")

	for _, name := range collectVariables(program) {
		fmt.Fprintf(&b, "    var_%s: resq 1\n", name)
	}
	return b.String()
}

// collectVariables gathers the distinct variable names a program declares,
// in first-appearance order.
func collectVariables(program *compiler.Program) []string {
	var names []string
	collectFromStatements(program.Statements, &names)
	return names
}

func collectFromStatements(stmts []compiler.Stmt, names *[]string) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *compiler.VariableDecl:
			appendUnique(names, s.Name)
		case *compiler.LoopStmt:
			appendUnique(names, s.Variable)
			collectFromStatements(s.Body, names)
		case *compiler.IfStmt:
			collectFromStatements(s.Then, names)
			collectFromStatements(s.Else, names)
		}
	}
}

func appendUnique(names *[]string, name string) {
	for _, n := range *names {
		if n == name {
			return
		}
	}
	*names = append(*names, name)
}
