package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonhteper/errorkindgen/compiler/emitter"
	"github.com/jonhteper/errorkindgen/compiler/ir"
	"github.com/jonhteper/errorkindgen/compiler/parser"
)

const Version = "0.4.2"

// Options configures one generator run over a single package directory.
type Options struct {
	// Dir is the package directory to scan. Defaults to ".".
	Dir string

	// Output is the generated file name inside Dir.
	// Defaults to errorkind_gen.go.
	Output string

	// Method is the generated accessor name. Defaults to Kind.
	Method string

	// Types restricts generation to the named targets. Empty means all
	// targets found in the package.
	Types []string

	// DiagnosticSink receives every finding as it is recorded. Optional.
	DiagnosticSink func(Diagnostic)
}

func (o Options) dir() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

func (o Options) output() string {
	if o.Output == "" {
		return emitter.DefaultOutput
	}
	return o.Output
}

// Result is the outcome of a run. File is only populated when the
// package validated cleanly.
type Result struct {
	Schema      *ir.Schema
	Diagnostics []Diagnostic
	File        []byte
	Path        string
}

// OK reports whether the run produced output.
func (r *Result) OK() bool { return r != nil && len(r.Diagnostics) == 0 }

// Run executes the parse, validate and emit stages without touching the
// filesystem beyond reading sources. A package that fails validation
// yields the collected diagnostics and a VALIDATE stage error; nothing
// is rendered in that case, so rejection always precedes generation.
func Run(opts Options) (*Result, error) {
	pkg, err := parser.ParseDir(opts.dir())
	if err != nil {
		return nil, WrapContractError(StageParse, ErrCodePackageLoad, "load package", err)
	}

	schema, diags := BuildSchema(pkg)
	schema, diags = filterTargets(schema, opts.Types, diags)

	res := &Result{
		Schema:      schema,
		Diagnostics: diags,
		Path:        filepath.Join(opts.dir(), opts.output()),
	}
	for _, d := range diags {
		if opts.DiagnosticSink != nil {
			opts.DiagnosticSink(d)
		}
	}
	if len(diags) > 0 {
		return res, WrapContractError(StageValidate, diags[0].Code, "validate package",
			fmt.Errorf("%d finding(s) in %s", len(diags), pkg.Name))
	}

	file, err := emitter.Render(schema, pkg.Imports, res.Path, emitter.Options{Method: opts.Method})
	if err != nil {
		return res, WrapContractError(StageEmit, ErrCodeEmitRender, "render "+opts.output(), err)
	}
	res.File = file
	return res, nil
}

// Write persists the rendered file to Result.Path.
func (r *Result) Write() error {
	if len(r.File) == 0 {
		return WrapContractError(StageEmit, ErrCodeEmitWrite, "write "+r.Path,
			fmt.Errorf("nothing rendered"))
	}
	if err := os.WriteFile(r.Path, r.File, 0644); err != nil {
		return WrapContractError(StageEmit, ErrCodeEmitWrite, "write "+r.Path, err)
	}
	return nil
}

// Generate is the Run+Write convenience used by the CLI.
func Generate(opts Options) (*Result, error) {
	res, err := Run(opts)
	if err != nil {
		return res, err
	}
	return res, res.Write()
}

// filterTargets narrows the schema to the requested target names.
// Requesting a target the package does not declare is an error: a typo
// in a go:generate line must not silently generate nothing.
func filterTargets(schema *ir.Schema, names []string, diags []Diagnostic) (*ir.Schema, []Diagnostic) {
	if len(names) == 0 {
		return schema, diags
	}
	byName := map[string]ir.Target{}
	for _, t := range schema.Targets {
		byName[t.Name] = t
	}
	filtered := &ir.Schema{Package: schema.Package}
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			diags = append(diags, Diagnostic{
				Code:    ErrCodeTargetMissing,
				Message: fmt.Sprintf("requested target %s is not declared in package %s", name, schema.Package),
			})
			continue
		}
		filtered.Targets = append(filtered.Targets, t)
	}
	return filtered, diags
}
