package toolchain

import (
	"errors"
	"fmt"
)

// ErrNoSourceFiles is returned when the source path holds no .neb files.
var ErrNoSourceFiles = errors.New("no .neb source files found")

// ErrBinaryNotFound is returned when the expected executable is missing
// after the build stage.
var ErrBinaryNotFound = errors.New("binary not found after compilation")

// ErrTestFailed is returned by Test when one or more files fail.
var ErrTestFailed = errors.New("one or more tests failed")

// ExitError reports a tool or program that terminated with a non-zero
// exit status.
type ExitError struct {
	Tool   string
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with status %d", e.Tool, e.Status)
}
