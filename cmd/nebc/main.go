// Command nebc compiles Nebula (.neb) source files to native executables
// through NASM and the system linker.
//
//	nebc build hello.neb --target linux
//	nebc run hello.neb
//	nebc test examples/
package main

import (
	"flag"
	"fmt"
	"os"

	"nebc/pkg/codegen"
	"nebc/pkg/toolchain"
)

const usage = `Usage: nebc <command> [flags] [path]

Commands:
  build   compile a .neb file to a native executable
  run     build and immediately execute
  test    check source files without producing binaries

Flags (build and run):
  -target string      build target: current, linux, mac, windows (default "current")
  -build-path string  output directory (default "build")
  -show-asm           print generated assembly instead of assembling
  -no-protection      disable runtime protection entirely
  -protection string  protection tier: none, basic, quantum, military (default "quantum")
  -verbose            log build stages
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:], false)
	case "run":
		err = runBuild(os.Args[2:], true)
	case "test":
		err = runTest(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "nebc: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "nebc: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(args []string, execute bool) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	target := fs.String("target", "current", "build target: current, linux, mac, windows")
	buildPath := fs.String("build-path", "build", "output directory")
	showASM := fs.Bool("show-asm", false, "print generated assembly instead of assembling")
	noProtection := fs.Bool("no-protection", false, "disable runtime protection")
	protection := fs.String("protection", "quantum", "protection tier: none, basic, quantum, military")
	verbose := fs.Bool("verbose", false, "log build stages")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one source file, got %d", fs.NArg())
	}

	b := toolchain.NewBuilder()
	b.SourcePath = fs.Arg(0)
	b.BuildPath = *buildPath
	b.ShowASM = *showASM
	b.NoProtection = *noProtection
	b.Protection = codegen.ParseLevel(*protection)
	b.Verbose = *verbose

	if execute {
		return b.Run()
	}
	return b.Build(*target)
}

func runTest(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	b := toolchain.NewBuilder()
	switch fs.NArg() {
	case 0:
		return b.Test("")
	case 1:
		path := fs.Arg(0)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			b.SourcePath = path
			return b.Test("")
		}
		return b.Test(path)
	default:
		return fmt.Errorf("expected at most one path, got %d", fs.NArg())
	}
}
