package compiler

import (
	"regexp"
	"strings"

	"github.com/jonhteper/errorkindgen/compiler/ir"
	"github.com/jonhteper/errorkindgen/compiler/parser"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// predeclared lists the predeclared type names a transparent variant can
// never delegate through: none of them carries a kind accessor.
var predeclared = map[string]struct{}{
	"bool": {}, "string": {}, "int": {}, "int8": {}, "int16": {}, "int32": {},
	"int64": {}, "uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"uintptr": {}, "byte": {}, "rune": {}, "float32": {}, "float64": {},
	"complex64": {}, "complex128": {}, "any": {}, "error": {},
}

// BuildSchema turns the syntactic view of a package into a validated IR
// schema. All findings are collected: a broken variant never aborts the
// scan of its siblings, so one run reports everything at once. The schema
// is only usable when no diagnostics were produced.
func BuildSchema(pkg *parser.Package) (*ir.Schema, []Diagnostic) {
	var diags []Diagnostic

	schema := &ir.Schema{Package: pkg.Name}
	var targets []*ir.Target
	targetByMarker := map[string]*ir.Target{}

	// Directive resolution happens once so a conflicting declaration is
	// reported exactly once.
	resolved := map[*parser.TypeDecl]parser.Directive{}
	conflicted := map[*parser.TypeDecl]bool{}
	for _, decl := range pkg.Types {
		switch len(decl.Directives) {
		case 0:
		case 1:
			resolved[decl] = decl.Directives[0]
		default:
			conflicted[decl] = true
			diags = append(diags, diag(ErrCodeVariantConflict, decl.Directives[1].Pos,
				"%s carries %d errorkind directives, want at most one", decl.Name, len(decl.Directives)))
		}
	}

	// Pass 1: targets.
	for _, decl := range pkg.Types {
		d := resolved[decl]
		if conflicted[decl] || d.Verb != parser.VerbTarget {
			continue
		}
		if decl.Kind != parser.KindInterface {
			diags = append(diags, diag(ErrCodeTargetNotInterface, decl.Pos,
				"errorkind:target on %s: target must be an interface type", decl.Name))
			continue
		}
		if len(d.Args) != 1 || !validRef(d.Args[0]) {
			diags = append(diags, diag(ErrCodeDirectiveSyntax, d.Pos,
				"errorkind:target expects exactly one kind type, got %q", d.Raw))
			continue
		}
		if len(decl.Markers) == 0 {
			diags = append(diags, diag(ErrCodeTargetNotSealed, decl.Pos,
				"target %s declares no unexported marker method; add one (e.g. is%s()) to seal the group", decl.Name, decl.Name))
			continue
		}
		marker := decl.Markers[0]
		if prev, ok := targetByMarker[marker]; ok {
			diags = append(diags, diag(ErrCodeTargetDuplicate, decl.Pos,
				"targets %s and %s share the marker method %s()", prev.Name, decl.Name, marker))
			continue
		}
		t := &ir.Target{
			Name:   decl.Name,
			Kind:   mustRef(d.Args[0]),
			Marker: marker,
			Pos:    decl.Pos,
		}
		targets = append(targets, t)
		targetByMarker[marker] = t
	}

	// Pass 2: variants.
	members := map[*ir.Target]int{}
	for _, decl := range pkg.Types {
		d := resolved[decl]
		if d.Verb == parser.VerbTarget {
			continue
		}

		target := memberOf(pkg, decl.Name, targetByMarker, &diags)
		if target != nil {
			members[target]++
		}
		if conflicted[decl] {
			continue
		}
		if d.Verb != "" && d.Verb != parser.VerbKind && d.Verb != parser.VerbTransparent {
			diags = append(diags, diag(ErrCodeDirectiveSyntax, d.Pos,
				"unknown errorkind directive %q", d.Verb))
			continue
		}
		if target == nil {
			if d.Verb != "" {
				code := ErrCodeVariantOrphan
				if len(targetByMarker) == 0 {
					code = ErrCodeTargetMissing
				}
				diags = append(diags, diag(code, d.Pos,
					"%s carries errorkind:%s but no sealed target claims it; declare the group marker method", decl.Name, d.Verb))
			}
			continue
		}
		if d.Verb == "" {
			diags = append(diags, diag(ErrCodeVariantMissingDirective, decl.Pos,
				"%s is a variant of %s but has no errorkind:kind or errorkind:transparent directive", decl.Name, target.Name))
			continue
		}
		if decl.Kind == parser.KindInterface {
			diags = append(diags, diag(ErrCodeDirectiveSyntax, d.Pos,
				"errorkind:%s on %s: variants must be concrete types", d.Verb, decl.Name))
			continue
		}

		v, ok := buildVariant(decl, d, &diags)
		if !ok {
			continue
		}
		target.Variants = append(target.Variants, v)
	}

	for _, t := range targets {
		if members[t] == 0 {
			diags = append(diags, diag(ErrCodeTargetEmpty, t.Pos,
				"target %s has no variants", t.Name))
		}
		schema.Targets = append(schema.Targets, *t)
	}

	sortDiagnostics(diags)
	return schema, diags
}

func buildVariant(decl *parser.TypeDecl, d parser.Directive, diags *[]Diagnostic) (ir.Variant, bool) {
	v := ir.Variant{Name: decl.Name, Pos: decl.Pos}
	switch decl.Kind {
	case parser.KindStruct:
		if len(decl.Fields) == 0 {
			v.Shape = ir.ShapeUnit
		} else {
			v.Shape = ir.ShapeNamed
		}
	default:
		v.Shape = ir.ShapePositional
	}

	switch d.Verb {
	case parser.VerbKind:
		if len(d.Args) != 1 || !validRef(d.Args[0]) {
			*diags = append(*diags, diag(ErrCodeDirectiveSyntax, d.Pos,
				"errorkind:kind expects exactly one kind constant, got %q", d.Raw))
			return v, false
		}
		ref := mustRef(d.Args[0])
		v.Kind = &ref
		return v, true

	case parser.VerbTransparent:
		if len(d.Args) != 0 {
			*diags = append(*diags, diag(ErrCodeDirectiveSyntax, d.Pos,
				"errorkind:transparent takes no arguments, got %q", d.Raw))
			return v, false
		}
		v.Transparent = true
		switch v.Shape {
		case ir.ShapeUnit:
			*diags = append(*diags, diag(ErrCodeTransparentArity, decl.Pos,
				"transparent variant %s has no payload to delegate to", decl.Name))
			return v, false
		case ir.ShapeNamed:
			if len(decl.Fields) != 1 {
				*diags = append(*diags, diag(ErrCodeTransparentArity, decl.Pos,
					"transparent variant %s must have exactly one field, has %d", decl.Name, len(decl.Fields)))
				return v, false
			}
			f := decl.Fields[0]
			if f.Name == "" {
				*diags = append(*diags, diag(ErrCodeTransparentArity, decl.Pos,
					"transparent variant %s: cannot address its embedded payload", decl.Name))
				return v, false
			}
			v.Payload = ir.Payload{Field: f.Name, Type: f.Type}
			return v, true
		default:
			u := decl.Underlying
			if _, basic := predeclared[u]; basic || !validRef(u) {
				*diags = append(*diags, diag(ErrCodeTransparentArity, decl.Pos,
					"transparent variant %s: underlying type %s has no kind accessor to delegate to", decl.Name, u))
				return v, false
			}
			v.Payload = ir.Payload{Type: u}
			return v, true
		}
	}
	return v, false
}

// memberOf resolves which target (if any) claims decl through a marker
// method. A type matching the markers of several targets is rejected.
func memberOf(pkg *parser.Package, name string, targets map[string]*ir.Target, diags *[]Diagnostic) *ir.Target {
	var found *ir.Target
	for _, marker := range pkg.MarkersOf(name) {
		t, ok := targets[marker]
		if !ok {
			continue
		}
		if found != nil && found != t {
			*diags = append(*diags, diag(ErrCodeVariantConflict, pkg.Type(name).Pos,
				"%s declares markers of both %s and %s", name, found.Name, t.Name))
			return nil
		}
		found = t
	}
	return found
}

func validRef(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !identRE.MatchString(p) {
			return false
		}
	}
	return true
}

func mustRef(s string) ir.KindRef {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return ir.KindRef{Pkg: s[:i], Name: s[i+1:]}
	}
	return ir.KindRef{Name: s}
}
