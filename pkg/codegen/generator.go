package codegen

import (
	"fmt"
	"strings"

	"nebc/pkg/compiler"
)

// Generator walks a Program and emits x86-64 assembly text in NASM syntax.
// Statement code accumulates in body; the surrounding sections are assembled
// afterwards, once the string pool and variable tables are complete.
type Generator struct {
	ctx  *Context
	body strings.Builder
}

func NewGenerator() *Generator {
	return &Generator{ctx: NewContext()}
}

func (g *Generator) line(format string, args ...any) {
	fmt.Fprintf(&g.body, format+"\n", args...)
}

// Generate produces the complete assembly program: data section, reserved
// storage, the _start entry with the generated statement code, a clean exit,
// the code-end marker used by the integrity checksum, and the runtime print
// routines.
func Generate(program *compiler.Program) (string, error) {
	g := NewGenerator()
	for _, stmt := range program.Statements {
		if err := g.genStatement(stmt); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	out.WriteString(g.ctx.DataSection())
	out.WriteString("\n")
	out.WriteString(g.ctx.BssSection(program))
	out.WriteString("\n")
	out.WriteString("section .text\n")
	out.WriteString("global _start\n")
	out.WriteString("\n_start:\n")
	out.WriteString(g.body.String())
	out.WriteString("    mov rax, 60\n")
	out.WriteString("    xor rdi, rdi\n")
	out.WriteString("    syscall\n")
	out.WriteString("\n_nebula_code_end:\n")
	out.WriteString(runtimePrintRoutines)
	return out.String(), nil
}

// runtimePrintRoutines is emitted once per program regardless of how many
// call sites use it.
const runtimePrintRoutines = `
; -------------------------------------------------------------------
; Runtime Print Utilities
; -------------------------------------------------------------------

; Print string function
; Input: rsi = string pointer, rdx = length
_nebula_print:
    push rax
    push rdi
    push rsi
    push rdx
    push rcx
    push r11

    mov rax, 1          ; sys_write (Linux/x86_64)
    mov rdi, 1          ; stdout file descriptor
    syscall

    pop r11
    pop rcx
    pop rdx
    pop rsi
    pop rdi
    pop rax
    ret

; Print number function (64-bit signed integer)
; Input: rax = number
_nebula_print_number:
    push rbp
    mov rbp, rsp
    sub rsp, 32         ; Reserve stack space for digit buffer

    test rax, rax
    jns .positive

    ; Negative: print '-' and negate for digit conversion
    push rax
    mov rsi, minus_sign
    mov rdx, 1
    call _nebula_print
    pop rax
    neg rax

.positive:
    test rax, rax
    jz .print_zero

    mov r8, rax         ; r8 = number to convert
    mov r9, 0           ; r9 = digit counter
    mov r10, rsp        ; r10 = pointer to buffer on stack
    mov rbx, 10         ; Divisor = 10

.convert_loop:
    xor rdx, rdx
    div rbx             ; rax = rax / 10, rdx = rax % 10
    add dl, '0'
    mov [r10], dl       ; Digits land in reverse order
    inc r10
    inc r9
    test rax, rax
    jnz .convert_loop

    ; Reverse the digit buffer in place
    mov rsi, rsp
    lea rdi, [rsp + r9 - 1]
.reverse_loop:
    cmp rsi, rdi
    jge .print_digits
    mov al, [rsi]
    mov cl, [rdi]
    mov [rsi], cl
    mov [rdi], al
    inc rsi
    dec rdi
    jmp .reverse_loop

.print_zero:
    mov byte [rsp], '0'
    mov r9, 1
    jmp .print_digits

.print_digits:
    mov rsi, rsp        ; Buffer address
    mov rdx, r9         ; Length
    call _nebula_print

    mov rsp, rbp
    pop rbp
    ret

; String length function
; Input: rsi = string pointer
; Output: rax = length
_nebula_strlen:
    push rdi
    mov rdi, rsi
    xor rcx, rcx
    not rcx             ; rcx = max scan length
    xor al, al          ; search byte is NUL
    repne scasb
    not rcx
    dec rcx             ; rcx = index of the NUL terminator
    mov rax, rcx
    pop rdi
    ret
`
