// Command errorkindgen generates Kind accessor methods for sealed error
// groups annotated with errorkind directives. It is meant to be driven
// by go:generate:
//
//	//go:generate errorkindgen -type=ServiceError
package main

import (
	"fmt"
	"os"

	"github.com/jonhteper/errorkindgen/compiler"
)

func main() {
	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "generate":
		runGenerate(args[1:])
	case "validate":
		runValidate(args[1:])
	case "explain":
		runExplain(args[1:])
	case "version":
		fmt.Printf("errorkindgen v%s\n", compiler.Version)
	case "help", "-h", "-help", "--help":
		printUsage()
	default:
		// Bare invocation keeps go:generate lines short:
		// `errorkindgen -type=Foo` is `errorkindgen generate -type=Foo`.
		runGenerate(args)
	}
}

func printUsage() {
	fmt.Printf("errorkindgen v%s — Kind accessor generator for sealed error groups\n", compiler.Version)
	fmt.Println("\nUsage:")
	fmt.Println("  errorkindgen generate [flags] [dir]  Generate Kind accessors (default command)")
	fmt.Println("  errorkindgen validate [flags] [dir]  Check directives without writing anything")
	fmt.Println("  errorkindgen explain <CODE>          Explain a diagnostic code with an example")
	fmt.Println("  errorkindgen version                 Print the tool version")
	fmt.Println("\nGenerate flags:")
	fmt.Println("  -type=T1,T2   restrict generation to the named targets")
	fmt.Println("  -output=FILE  generated file name (default errorkind_gen.go)")
	fmt.Println("  -method=NAME  accessor method name (default Kind)")
	fmt.Println("  -dry-run      print the generated file to stdout instead of writing it")
	fmt.Println("  -json         emit structured JSON diagnostics")
	fmt.Println("  -v            verbose (debug) logging")
}
