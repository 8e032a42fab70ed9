package codegen

import (
	"strings"
	"testing"
)

const sampleAsm = "section .text\nglobal _start\n\n_start:\n    mov rax, 60\n    syscall\n"

func TestProtectNone(t *testing.T) {
	if got := Protect(sampleAsm, LevelNone); got != sampleAsm {
		t.Errorf("LevelNone changed the input:\n%s", got)
	}
}

func TestProtectBasic(t *testing.T) {
	got := Protect(sampleAsm, LevelBasic)

	if !strings.HasPrefix(got, "section .nebula_protection") {
		t.Errorf("missing protection section header:\n%s", got)
	}
	if !strings.Contains(got, sampleAsm) {
		t.Error("original assembly not embedded intact")
	}
	for _, want := range []string{
		"_nebula_integrity_check:",
		"_quantum_checksum_verify:",
		"cmp al, 0x42",
		"_nebula_self_destruct:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
	// Header before the program, checksum routines after.
	if strings.Index(got, "_nebula_integrity_check:") > strings.Index(got, "_start:") {
		t.Error("integrity entry not before the program")
	}
	if strings.Index(got, "_quantum_checksum_verify:\n") < strings.Index(got, "_start:") {
		t.Error("checksum routine not after the program")
	}
}

func TestProtectQuantum(t *testing.T) {
	got := Protect(sampleAsm, LevelQuantum)

	if !strings.HasPrefix(got, "section .nebula_quantum") {
		t.Errorf("missing quantum section header:\n%s", got)
	}
	if !strings.Contains(got, sampleAsm) {
		t.Error("original assembly not embedded intact")
	}
	for _, want := range []string{
		"_quantum_entanglement_setup:",
		"_quantum_temporal_scramble:",
		"rdtsc",
		"and eax, 0x7",
		"temporal_jump_table:",
		"_temporal_path_7:",
		"_quantum_spatial_entangle:",
		"entanglement_key: dq 0x4E4553554C41",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestProtectMilitaryMatchesQuantum(t *testing.T) {
	if Protect(sampleAsm, LevelMilitary) != Protect(sampleAsm, LevelQuantum) {
		t.Error("military tier differs from quantum")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"none", LevelNone},
		{"basic", LevelBasic},
		{"quantum", LevelQuantum},
		{"military", LevelMilitary},
		{"NONE", LevelNone},
		{"Basic", LevelBasic},
		{"", LevelQuantum},
		{"bogus", LevelQuantum},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelNone, "none"},
		{LevelBasic, "basic"},
		{LevelQuantum, "quantum"},
		{LevelMilitary, "military"},
		{Level(42), "none"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}
