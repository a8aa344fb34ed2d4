// Package parser loads a Go package directory with go/parser and reduces
// it to the syntactic facts the generator cares about: type declarations,
// their errorkind directives, candidate marker methods, and imports.
// The pass is purely syntactic; no type checking is performed.
package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonhteper/errorkindgen/compiler/ir"
)

// TypeKind classifies a scanned type declaration by its syntactic form.
type TypeKind int

const (
	KindInterface TypeKind = iota
	KindStruct
	KindOther
)

// Field is one struct field. Embedded fields get the base type name as
// their Name so transparent delegation can address them.
type Field struct {
	Name     string
	Type     string
	Embedded bool
}

// TypeDecl is a scanned package-level type declaration.
type TypeDecl struct {
	Name       string
	Kind       TypeKind
	Directives []Directive
	Pos        ir.Position

	// Markers lists the unexported zero-argument, zero-result methods
	// declared in an interface body, in source order. Interface only.
	Markers []string

	// Fields of a struct declaration. Struct only.
	Fields []Field

	// Underlying is the printed underlying type of a non-struct,
	// non-interface declaration, e.g. "string" or "CacheError".
	Underlying string
}

// Method is a candidate marker method: a package-level method with an
// unexported name, no parameters and no results.
type Method struct {
	Recv string
	Name string
	Pos  ir.Position
}

// Package is the syntactic view of one scanned directory.
type Package struct {
	Name  string
	Dir   string
	Types []*TypeDecl

	// Methods holds candidate marker methods in source order.
	Methods []Method

	// Imports maps package selectors used in the scanned files to their
	// import paths, e.g. "kinds" -> ".../internal/kinds".
	Imports map[string]string
}

// Type returns the declaration named name, or nil.
func (p *Package) Type(name string) *TypeDecl {
	for _, t := range p.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// MarkersOf returns the names of candidate marker methods declared on
// recv, in source order.
func (p *Package) MarkersOf(recv string) []string {
	var out []string
	for _, m := range p.Methods {
		if m.Recv == recv {
			out = append(out, m.Name)
		}
	}
	return out
}

var generatedRe = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// ParseDir scans dir and returns its syntactic view. Test files and
// generated files are skipped, so re-running the generator never sees
// its own previous output.
func ParseDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	fset := token.NewFileSet()
	pkg := &Package{Dir: dir, Imports: map[string]string{}}

	for _, name := range names {
		path := filepath.Join(dir, name)
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if isGenerated(file) {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		} else if pkg.Name != file.Name.Name {
			return nil, fmt.Errorf("multiple packages in %s: %s and %s", dir, pkg.Name, file.Name.Name)
		}
		collectFile(pkg, fset, file)
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("only generated Go files in %s", dir)
	}
	return pkg, nil
}

func isGenerated(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.End() >= file.Package {
			break
		}
		for _, c := range group.List {
			if generatedRe.MatchString(c.Text) {
				return true
			}
		}
	}
	return false
}

func collectFile(pkg *Package, fset *token.FileSet, file *ast.File) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		sel := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			sel = path[i+1:]
		}
		if imp.Name != nil {
			sel = imp.Name.Name
		}
		if sel == "_" || sel == "." {
			continue
		}
		if _, ok := pkg.Imports[sel]; !ok {
			pkg.Imports[sel] = path
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				pkg.Types = append(pkg.Types, newTypeDecl(fset, ts, doc))
			}
		case *ast.FuncDecl:
			if m, ok := markerCandidate(fset, d); ok {
				pkg.Methods = append(pkg.Methods, m)
			}
		}
	}
}

func newTypeDecl(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup) *TypeDecl {
	t := &TypeDecl{
		Name: ts.Name.Name,
		Pos:  position(fset, ts.Pos()),
	}
	if doc != nil {
		for _, c := range doc.List {
			if d, ok := parseDirective(c.Text, position(fset, c.Pos())); ok {
				t.Directives = append(t.Directives, d)
			}
		}
	}

	switch typ := ts.Type.(type) {
	case *ast.InterfaceType:
		t.Kind = KindInterface
		t.Markers = interfaceMarkers(typ)
	case *ast.StructType:
		t.Kind = KindStruct
		t.Fields = structFields(typ)
	default:
		t.Kind = KindOther
		t.Underlying = types.ExprString(ts.Type)
	}
	return t
}

// interfaceMarkers returns the unexported zero-argument, zero-result
// methods declared directly in the interface body. Embedded interfaces
// are ignored: a marker must be declared where the group is declared.
func interfaceMarkers(iface *ast.InterfaceType) []string {
	var out []string
	if iface.Methods == nil {
		return out
	}
	for _, field := range iface.Methods.List {
		if len(field.Names) != 1 {
			continue
		}
		name := field.Names[0].Name
		if ast.IsExported(name) {
			continue
		}
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		if numFields(ft.Params) != 0 || numFields(ft.Results) != 0 {
			continue
		}
		out = append(out, name)
	}
	return out
}

func structFields(st *ast.StructType) []Field {
	var out []Field
	if st.Fields == nil {
		return out
	}
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			out = append(out, Field{Name: embeddedName(field.Type), Type: typ, Embedded: true})
			continue
		}
		for _, name := range field.Names {
			out = append(out, Field{Name: name.Name, Type: typ})
		}
	}
	return out
}

// embeddedName resolves the field name an embedded type is addressed by.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	}
	return ""
}

func markerCandidate(fset *token.FileSet, d *ast.FuncDecl) (Method, bool) {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return Method{}, false
	}
	if ast.IsExported(d.Name.Name) {
		return Method{}, false
	}
	if numFields(d.Type.Params) != 0 || numFields(d.Type.Results) != 0 {
		return Method{}, false
	}
	recv := receiverBase(d.Recv.List[0].Type)
	if recv == "" {
		return Method{}, false
	}
	return Method{
		Recv: recv,
		Name: d.Name.Name,
		Pos:  position(fset, d.Pos()),
	}, true
}

func receiverBase(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return receiverBase(e.X)
	case *ast.IndexExpr:
		return receiverBase(e.X)
	case *ast.IndexListExpr:
		return receiverBase(e.X)
	}
	return ""
}

func numFields(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	return fl.NumFields()
}

func position(fset *token.FileSet, pos token.Pos) ir.Position {
	p := fset.Position(pos)
	return ir.Position{
		File:   filepath.Base(p.Filename),
		Line:   p.Line,
		Column: p.Column,
	}
}
