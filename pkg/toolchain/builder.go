// Package toolchain drives the external half of a build: it runs the
// compiler pipeline over a .neb source file, hands the assembly text to
// nasm, links the object with ld (falling back to gcc), and can execute
// the result or batch-check a directory of sources.
package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"nebc/pkg/codegen"
	"nebc/pkg/compiler"
	"nebc/pkg/debug"
)

// Builder holds the configuration for one build, run, or test invocation.
type Builder struct {
	SourcePath   string
	BuildPath    string
	Target       string // "current", "linux", "mac", or "windows"
	Protection   codegen.Level
	ShowASM      bool
	NoProtection bool
	Verbose      bool
}

func NewBuilder() *Builder {
	return &Builder{
		SourcePath: ".",
		BuildPath:  "build",
		Target:     "current",
		Protection: codegen.LevelQuantum,
	}
}

// Build compiles the configured source file for the given target. With
// ShowASM set the generated assembly goes to stdout and no binary is
// produced.
func (b *Builder) Build(target string) error {
	if target != "" {
		b.Target = target
	}
	if !isNebFile(b.SourcePath) {
		return ErrNoSourceFiles
	}

	b.logVerbose("Processing: %s", b.SourcePath)

	source, err := os.ReadFile(b.SourcePath)
	if err != nil {
		return err
	}

	asm, err := b.generateAssembly(string(source))
	if err != nil {
		return err
	}

	if b.ShowASM {
		fmt.Println(asm)
		return nil
	}

	if err := os.MkdirAll(b.BuildPath, 0o755); err != nil {
		return err
	}
	asmPath := filepath.Join(b.BuildPath, "quantum_output.asm")
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		return err
	}
	b.logVerbose("Generated assembly: %d lines", strings.Count(asm, "\n"))

	return b.assembleAndLink(asmPath)
}

// generateAssembly runs the full compiler pipeline over one source text.
func (b *Builder) generateAssembly(source string) (string, error) {
	timer := debug.NewTimer("compile")
	defer timer.Finish()

	debug.Compilerf("tokenizing %d bytes", len(source))
	tokens, err := compiler.Tokenize(source)
	if err != nil {
		return "", err
	}
	debug.Lexerf("%d tokens", len(tokens))

	program, err := compiler.Parse(tokens)
	if err != nil {
		return "", err
	}
	debug.Parserf("%d top-level statements", len(program.Statements))

	if err := compiler.Analyze(program); err != nil {
		return "", err
	}

	asm, err := codegen.Generate(program)
	if err != nil {
		return "", err
	}

	level := b.Protection
	if b.NoProtection {
		level = codegen.LevelNone
	}
	debug.Codegenf("protection level %s", level)
	return codegen.Protect(asm, level), nil
}

// Run builds for the current platform and executes the resulting binary.
func (b *Builder) Run() error {
	if err := b.Build("current"); err != nil {
		return err
	}
	return b.executeBinary()
}

// Test checks source files without producing binaries. With file set only
// that file is checked, otherwise every .neb file in the source directory.
// All files are checked even after a failure.
func (b *Builder) Test(file string) error {
	var files []string
	if file != "" {
		files = []string{file}
	} else {
		var err error
		files, err = b.findNebFiles()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Testing %d files\n", len(files))

	allPassed := true
	for _, f := range files {
		fmt.Printf("Testing %s... ", f)
		if err := testFile(f); err != nil {
			fmt.Println("FAILED")
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			allPassed = false
			continue
		}
		fmt.Println("PASSED")
	}

	if !allPassed {
		return ErrTestFailed
	}
	fmt.Println("All tests passed")
	return nil
}

// testFile runs the front-end pipeline only; nothing is assembled.
func testFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return compiler.Compile(string(source))
}

// assembleAndLink turns assembly text into an executable: nasm for the
// object file, then the target's linker with a fallback to the alternative
// one.
func (b *Builder) assembleAndLink(asmPath string) error {
	objPath := filepath.Join(b.BuildPath, "quantum_object.o")
	outPath := filepath.Join(b.BuildPath, b.outputName())

	b.logVerbose("Assembling %s", asmPath)
	if err := runTool("nasm", "-f", b.asmFormat(), asmPath, "-o", objPath); err != nil {
		return err
	}

	b.logVerbose("Linking %s", outPath)
	if err := b.link(b.linker(), objPath, outPath); err != nil {
		if altErr := b.link(b.alternativeLinker(), objPath, outPath); altErr != nil {
			return err
		}
	}

	if err := os.Chmod(outPath, 0o755); err != nil {
		return err
	}
	fmt.Printf("Binary generated: %s\n", outPath)
	return nil
}

func (b *Builder) link(linker, objPath, outPath string) error {
	args := []string{objPath, "-o", outPath}
	if linker == "gcc" {
		// Raw assembly objects have no C runtime startup files.
		args = append(args, "-nostartfiles")
	}
	return runTool(linker, args...)
}

// runTool executes an external tool, passing its output through.
func runTool(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Tool: name, Status: exitErr.ExitCode()}
	}
	return fmt.Errorf("running %s: %w", name, err)
}

// executeBinary runs the freshly built program.
func (b *Builder) executeBinary() error {
	path := filepath.Join(b.BuildPath, b.outputName())
	if _, err := os.Stat(path); err != nil {
		return ErrBinaryNotFound
	}

	cmd := exec.Command(path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Tool: "program", Status: exitErr.ExitCode()}
	}
	return fmt.Errorf("running program: %w", err)
}

// findNebFiles lists the .neb files directly under the source directory.
func (b *Builder) findNebFiles() ([]string, error) {
	entries, err := os.ReadDir(b.SourcePath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(b.SourcePath, entry.Name())
		if isNebFile(path) {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	return files, nil
}

func isNebFile(path string) bool {
	return filepath.Ext(path) == ".neb"
}

func (b *Builder) outputName() string {
	if b.Target == "windows" {
		return "quantum_output.exe"
	}
	return "quantum_output"
}

func (b *Builder) asmFormat() string {
	switch b.Target {
	case "windows":
		return "win64"
	case "mac":
		return "macho64"
	default:
		return "elf64"
	}
}

func (b *Builder) linker() string {
	if b.Target == "windows" {
		return "gcc"
	}
	return "ld"
}

func (b *Builder) alternativeLinker() string {
	if b.linker() == "ld" {
		return "gcc"
	}
	return "ld"
}

func (b *Builder) logVerbose(format string, args ...any) {
	if b.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}
