package codegen

import "strings"

// Level selects the runtime protection tier applied to generated assembly.
type Level int

const (
	LevelNone Level = iota
	LevelBasic
	LevelQuantum
	LevelMilitary // currently identical to Quantum
)

var levelNames = [...]string{
	LevelNone:     "none",
	LevelBasic:    "basic",
	LevelQuantum:  "quantum",
	LevelMilitary: "military",
}

func (l Level) String() string {
	if int(l) >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "none"
}

// ParseLevel maps a tier name to its Level; unrecognized names default to
// quantum, the standard tier.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "none":
		return LevelNone
	case "basic":
		return LevelBasic
	case "military":
		return LevelMilitary
	default:
		return LevelQuantum
	}
}

// Protect applies the selected tier as a pure text transform over the
// finished assembly. The checksum routines compare against hard-coded magic
// values rather than values derived from the emitted code; the tiers are
// deterrents, not cryptographic integrity checks.
func Protect(asm string, level Level) string {
	switch level {
	case LevelBasic:
		return basicProtectionHeader + asm + basicProtectionFunctions
	case LevelQuantum, LevelMilitary:
		return quantumProtectionHeader + asm + quantumProtectionFunctions
	default:
		return asm
	}
}

const basicProtectionHeader = `section .nebula_protection
;; Entry point for basic runtime integrity check
_nebula_integrity_check:
    call _quantum_checksum_verify
    test rax, rax
    jnz _integrity_ok
    call _nebula_self_destruct
_integrity_ok:
    ret

`

const basicProtectionFunctions = `
;; -------------------------------------------------------------------
;; Basic Integrity Functions
;; -------------------------------------------------------------------

_quantum_checksum_verify:
    ; 8-bit additive checksum over the code segment, compared against a
    ; fixed expected value. A deterrent against trivial patching only.
    mov rsi, _start
    mov rcx, _nebula_code_end - _start
    xor rax, rax
.checksum_loop:
    add al, [rsi]
    inc rsi
    loop .checksum_loop
    cmp al, 0x42    ; expected magic value ('B')
    ret

_nebula_self_destruct:
    ; Immediate termination on integrity failure
    mov rax, 60
    mov rdi, 1
    syscall
    ret
`

const quantumProtectionHeader = `section .nebula_quantum
;; Quantum Entanglement and Scrambling Setup
_quantum_entanglement_setup:
    ; Dynamic code flow scrambling initialization
    call _quantum_temporal_scramble
    ; Spatial code linking/integrity establishment
    call _quantum_spatial_entangle
    ret

`

const quantumProtectionFunctions = `
;; -------------------------------------------------------------------
;; Quantum Obfuscation Functions (Anti-Tamper/Anti-Analysis)
;; -------------------------------------------------------------------

_quantum_temporal_scramble:
    ; Scrambles execution flow on a dynamic factor (RDTSC) to make
    ; tracing unpredictable.
    rdtsc               ; Read Time-Stamp Counter
    and eax, 0x7        ; Last 3 bits select one of 8 paths
    lea rbx, [temporal_jump_table]
    jmp [rbx + rax * 8] ; Indirect jump

temporal_jump_table:
    dq _temporal_path_0, _temporal_path_1, _temporal_path_2, _temporal_path_3
    dq _temporal_path_4, _temporal_path_5, _temporal_path_6, _temporal_path_7

; The paths currently collapse to a single ret.
_temporal_path_0:
_temporal_path_1:
_temporal_path_2:
_temporal_path_3:
_temporal_path_4:
_temporal_path_5:
_temporal_path_6:
_temporal_path_7:
    ret

_quantum_spatial_entangle:
    ; Links the critical sections to the key so trivial modification of
    ; either is observable.
    mov rax, [entanglement_key]
    xor [critical_section_1], rax
    xor [critical_section_2], rax
    ret

; Runtime Data for Quantum Protection
entanglement_key: dq 0x4E4553554C41  ; NEBULA magic value
critical_section_1: dq 0
critical_section_2: dq 0
`
