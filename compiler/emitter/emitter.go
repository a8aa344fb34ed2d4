// Package emitter renders a validated IR schema into a generated Go
// source file. Rendering goes through an embedded text/template, then
// go/format, then goimports, so the output is always canonically
// formatted and byte-identical for identical input.
package emitter

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/jonhteper/errorkindgen/compiler/ir"
	"github.com/jonhteper/errorkindgen/templates"
)

// DefaultMethod is the accessor name generated when none is configured.
const DefaultMethod = "Kind"

// DefaultOutput is the generated file name when none is configured.
const DefaultOutput = "errorkind_gen.go"

// Options configures rendering.
type Options struct {
	// Method is the name of the generated accessor. Defaults to Kind.
	Method string
}

func (o Options) method() string {
	if o.Method == "" {
		return DefaultMethod
	}
	return o.Method
}

type importData struct {
	Alias string
	Path  string
}

type methodData struct {
	Recv string
	Name string
	Kind string
	Body string
}

type targetData struct {
	Name     string
	Methods  []methodData
	Variants []string
}

type fileData struct {
	Package string
	Imports []importData
	Targets []targetData
}

// Render produces the generated file for schema. sourceImports maps the
// package selectors of the scanned source files to import paths; kind
// references qualified with a known selector get their import emitted
// directly, anything else is left for goimports to resolve. outPath is
// the path the file will be written to and anchors import resolution.
func Render(schema *ir.Schema, sourceImports map[string]string, outPath string, opts Options) ([]byte, error) {
	data := fileData{Package: schema.Package}

	for _, sel := range schema.Imports() {
		p, ok := sourceImports[sel]
		if !ok {
			continue
		}
		imp := importData{Path: p}
		if path.Base(p) != sel {
			imp.Alias = sel
		}
		data.Imports = append(data.Imports, imp)
	}

	for _, t := range schema.Targets {
		td := targetData{Name: t.Name}
		for _, v := range t.Variants {
			td.Methods = append(td.Methods, method(t, v, opts.method()))
			td.Variants = append(td.Variants, v.Name)
		}
		data.Targets = append(data.Targets, td)
	}

	raw, err := templates.FS.ReadFile("errorkind_gen.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New("errorkind_gen").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gofmt generated source: %w", err)
	}

	fixed, err := imports.Process(outPath, formatted, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve imports: %w", err)
	}
	return fixed, nil
}

// method builds one accessor. Literal arms never touch the receiver, so
// the binder is dropped exactly as the payload would be ignored in a
// wildcard match. Transparent arms bind the receiver and forward.
func method(t ir.Target, v ir.Variant, name string) methodData {
	m := methodData{Name: name, Kind: t.Kind.String()}
	switch {
	case !v.Transparent:
		m.Recv = fmt.Sprintf("(%s)", v.Name)
		m.Body = v.Kind.String()
	case v.Shape == ir.ShapePositional:
		m.Recv = fmt.Sprintf("(e %s)", v.Name)
		m.Body = fmt.Sprintf("%s(e).%s()", v.Payload.Type, name)
	default:
		m.Recv = fmt.Sprintf("(e %s)", v.Name)
		m.Body = fmt.Sprintf("e.%s.%s()", v.Payload.Field, name)
	}
	return m
}
