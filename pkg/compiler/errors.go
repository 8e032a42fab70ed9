package compiler

import "fmt"

// SyntaxError is reported by the scanner and parser. Scanner errors carry
// position 0; precise positions are not tracked at that level.
type SyntaxError struct {
	Position int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at position %d: %s", e.Position, e.Message)
}

func lexError(message string) error {
	return &SyntaxError{Position: 0, Message: message}
}

func parseError(message string) error {
	return &SyntaxError{Position: 0, Message: message}
}

// UndefinedVariableError reports use of a name that was never declared.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable: %s", e.Name)
}

// TypeMismatchError reports a binary operation over incompatible operand types.
type TypeMismatchError struct {
	Details string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Type mismatch: %s", e.Details)
}

// TypeError reports a semantic type check failure other than a mismatch,
// such as a non-integer loop bound.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Type error: %s", e.Message)
}
