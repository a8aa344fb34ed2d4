package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jonhteper/errorkindgen/compiler"
)

type validateReport struct {
	OK          bool                  `json:"ok"`
	Package     string                `json:"package,omitempty"`
	Targets     []string              `json:"targets,omitempty"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`
	Error       string                `json:"error,omitempty"`
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	typeList := fs.String("type", "", "comma-separated list of target interfaces")
	jsonOut := fs.Bool("json", false, "emit structured JSON output")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	res, err := compiler.Run(compiler.Options{Dir: dir, Types: splitTypes(*typeList)})

	if *jsonOut {
		report := validateReport{OK: err == nil}
		if res != nil {
			report.Package = res.Schema.Package
			for _, t := range res.Schema.Targets {
				report.Targets = append(report.Targets, t.Name)
			}
			report.Diagnostics = res.Diagnostics
		}
		if err != nil {
			report.Error = err.Error()
		}
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if err != nil {
		reportFailure("Validate", res, err, false)
		os.Exit(1)
	}
	fmt.Printf("✅ Validate OK: %d target(s) in package %s\n", len(res.Schema.Targets), res.Schema.Package)
}
