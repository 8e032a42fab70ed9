// Package debug provides conditional logging and stage timing for the
// compiler pipeline, gated by environment variables so release binaries
// stay quiet by default.
package debug

import (
	"fmt"
	"os"
	"time"
)

// Enabled reports whether debug logging is active (NEBC_DEBUG is set).
func Enabled() bool {
	_, ok := os.LookupEnv("NEBC_DEBUG")
	return ok
}

// PerfEnabled reports whether stage timing is active (NEBC_VERBOSE is set).
func PerfEnabled() bool {
	_, ok := os.LookupEnv("NEBC_VERBOSE")
	return ok
}

func logStage(stage, format string, args ...any) {
	if Enabled() {
		fmt.Printf("%s: %s\n", stage, fmt.Sprintf(format, args...))
	}
}

// Lexerf logs a scanner-stage message when debug mode is active.
func Lexerf(format string, args ...any) { logStage("LEXER", format, args...) }

// Parserf logs a parser-stage message when debug mode is active.
func Parserf(format string, args ...any) { logStage("PARSER", format, args...) }

// Codegenf logs a code-generation message when debug mode is active.
func Codegenf(format string, args ...any) { logStage("CODEGEN", format, args...) }

// Compilerf logs a pipeline orchestration message when debug mode is active.
func Compilerf(format string, args ...any) { logStage("COMPILER", format, args...) }

// PerfTimer measures the duration of one named operation.
//
//	t := debug.NewTimer("parse")
//	...
//	t.Finish()
type PerfTimer struct {
	start time.Time
	label string
}

func NewTimer(label string) *PerfTimer {
	return &PerfTimer{start: time.Now(), label: label}
}

// Finish prints the elapsed time when timing is active.
func (t *PerfTimer) Finish() {
	if PerfEnabled() {
		fmt.Printf("%s: %v\n", t.label, time.Since(t.start))
	}
}
