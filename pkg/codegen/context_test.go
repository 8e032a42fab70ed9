package codegen

import (
	"reflect"
	"strings"
	"testing"

	"nebc/pkg/compiler"
)

func TestAddString(t *testing.T) {
	ctx := NewContext()

	first := ctx.AddString("hello")
	if first != "str_0" {
		t.Errorf("first label = %q, want %q", first, "str_0")
	}
	// Pooling is idempotent: the same content always maps to the same label.
	if again := ctx.AddString("hello"); again != first {
		t.Errorf("repeat label = %q, want %q", again, first)
	}
	if second := ctx.AddString("world"); second != "str_1" {
		t.Errorf("second label = %q, want %q", second, "str_1")
	}
}

func TestAddStringFixedLabels(t *testing.T) {
	ctx := NewContext()

	if got := ctx.AddString(""); got != "empty_str" {
		t.Errorf("empty string label = %q, want %q", got, "empty_str")
	}
	if got := ctx.AddString("TRUE"); got != "str_true" {
		t.Errorf("TRUE label = %q, want %q", got, "str_true")
	}
	if got := ctx.AddString("FALSE"); got != "str_false" {
		t.Errorf("FALSE label = %q, want %q", got, "str_false")
	}
	// The empty string never enters the pool, so numbering is unaffected.
	if got := ctx.AddString("content"); got != "str_2" {
		t.Errorf("label after fixed entries = %q, want %q", got, "str_2")
	}
}

func TestRegisterVariable(t *testing.T) {
	ctx := NewContext()

	addr := ctx.RegisterVariable("count", compiler.TypeInteger)
	if addr != "var_count" {
		t.Errorf("address = %q, want %q", addr, "var_count")
	}
	// Re-registration keeps the address and overwrites the type.
	if again := ctx.RegisterVariable("count", compiler.TypeString); again != addr {
		t.Errorf("re-registered address = %q, want %q", again, addr)
	}
	if typ, ok := ctx.VariableType("count"); !ok || typ != compiler.TypeString {
		t.Errorf("type = %v (%v), want TypeString", typ, ok)
	}

	if _, ok := ctx.VariableAddress("missing"); ok {
		t.Error("VariableAddress succeeded for an unregistered name")
	}
}

func TestNextLabel(t *testing.T) {
	ctx := NewContext()
	want := []string{"L_0", "L_1", "L_2"}
	for _, w := range want {
		if got := ctx.NextLabel(); got != w {
			t.Errorf("NextLabel() = %q, want %q", got, w)
		}
	}
}

func TestDataSection(t *testing.T) {
	ctx := NewContext()
	ctx.AddString("beta")
	ctx.AddString("alpha")

	got := ctx.DataSection()

	if !strings.HasPrefix(got, "section .data\n") {
		t.Errorf("missing section header:\n%s", got)
	}
	// Entries are ordered by label, so str_0 (beta) comes before str_1.
	i0 := strings.Index(got, `str_0: db "beta", 0`)
	i1 := strings.Index(got, `str_1: db "alpha", 0`)
	if i0 < 0 || i1 < 0 || i0 > i1 {
		t.Errorf("pool entries missing or out of order:\n%s", got)
	}
	for _, fixed := range []string{
		"newline: db 10, 0",
		"empty_str: db 0",
		`minus_sign: db "-", 0`,
	} {
		if !strings.Contains(got, fixed) {
			t.Errorf("missing fixed constant %q:\n%s", fixed, got)
		}
	}
}

func TestDataSectionEscaping(t *testing.T) {
	ctx := NewContext()
	ctx.AddString("say \"hi\"\n")

	got := ctx.DataSection()
	if !strings.Contains(got, `str_0: db "say \"hi\"\n", 0`) {
		t.Errorf("escaping wrong:\n%s", got)
	}
}

func TestBssSection(t *testing.T) {
	program := mustCompile(t,
		"x 5\n"+
			"items [1, 2]\n"+
			"@ i, 1..3\n"+
			"    y i\n"+
			"? x > 1\n"+
			"    z 1\n"+
			"!?\n"+
			"    w 2\n")

	got := NewContext().BssSection(program)

	for _, want := range []string{
		"section .bss",
		"quantum_seed: resq 1",
		"critical_section_1: resq 1",
		"critical_section_2: resq 1",
		"var_x: resq 1",
		"var_i: resq 1",
		"var_y: resq 1",
		"var_z: resq 1",
		"var_w: resq 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
	// Array names get no slot; only scalar declarations and loop headers
	// are collected.
	if strings.Contains(got, "var_items") {
		t.Errorf("array name got a bss slot:\n%s", got)
	}
}

func TestCollectVariablesDeduplicates(t *testing.T) {
	program := mustCompile(t, "x 1\nx 2\ny 3\n")
	got := collectVariables(program)
	want := []string{"x", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collectVariables() = %v, want %v", got, want)
	}
}
