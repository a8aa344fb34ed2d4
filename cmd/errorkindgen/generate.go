package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jonhteper/errorkindgen/compiler"
	"github.com/jonhteper/errorkindgen/internal/pkg/logger"
)

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	typeList := fs.String("type", "", "comma-separated list of target interfaces; default is all targets in the package")
	output := fs.String("output", "", "generated file name; default errorkind_gen.go")
	method := fs.String("method", "", "accessor method name; default Kind")
	dryRun := fs.Bool("dry-run", false, "print the generated file to stdout instead of writing it")
	jsonOut := fs.Bool("json", false, "emit structured JSON diagnostics")
	verbose := fs.Bool("v", false, "verbose (debug) logging")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	log := logger.Init(*verbose)

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	opts := compiler.Options{
		Dir:    dir,
		Output: *output,
		Method: *method,
		Types:  splitTypes(*typeList),
	}
	log.Debug("generate", slog.String("dir", dir), slog.Any("types", opts.Types))

	res, err := compiler.Run(opts)
	if err != nil {
		reportFailure("Generate", res, err, *jsonOut)
		os.Exit(1)
	}

	if *dryRun {
		os.Stdout.Write(res.File)
		return
	}
	if err := res.Write(); err != nil {
		reportFailure("Generate", res, err, *jsonOut)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d target(s))\n", res.Path, len(res.Schema.Targets))
}

func splitTypes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
