// Package ir defines the intermediate representation of an error-kind
// generation unit. The IR is a pure description of the annotated
// declarations found in a package: it knows nothing about go/ast and can
// be constructed by hand in tests or by the parser from real source.
package ir

import "strings"

// Position locates a declaration in the scanned package. It mirrors
// token.Position but keeps the IR free of go/token so snapshots stay
// stable and comparable.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) IsValid() bool { return p.Line > 0 }

// Shape describes how a variant carries its payload.
type Shape int

const (
	// ShapeUnit is a struct type with no fields.
	ShapeUnit Shape = iota

	// ShapeNamed is a struct type with one or more fields.
	ShapeNamed

	// ShapePositional is a defined type whose underlying type is not a
	// struct, e.g. `type Declined string` or `type Wrapped CacheError`.
	// The single positional payload is the underlying value itself.
	ShapePositional
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNamed:
		return "named"
	case ShapePositional:
		return "positional"
	}
	return "unknown"
}

// KindRef names a value or type that belongs to the kind enumeration,
// optionally qualified with the package selector it was written with
// ("kinds.NotFound" has Pkg "kinds" and Name "NotFound"). The kind
// enumeration itself is never inspected, only referenced.
type KindRef struct {
	Pkg  string
	Name string
}

func (r KindRef) String() string {
	if r.Pkg == "" {
		return r.Name
	}
	return r.Pkg + "." + r.Name
}

// Payload carries the binding information a transparent variant needs to
// delegate to its inner value.
type Payload struct {
	// Field is the name of the single struct field to forward to. Empty
	// for positional variants.
	Field string

	// Type is the payload type exactly as written in source. For
	// positional variants the generated accessor converts the receiver
	// to this type before delegating.
	Type string
}

// Variant is one member of a target group.
type Variant struct {
	Name string

	Shape Shape

	// Kind is the literal classification to return. Nil when the
	// variant is transparent.
	Kind *KindRef

	// Transparent marks a variant whose classification is forwarded to
	// its single payload's own accessor.
	Transparent bool

	Payload Payload

	Pos Position
}

// Target is one sealed error group: the annotated interface, the kind
// enumeration it classifies into, and its variants in source order.
type Target struct {
	Name string

	// Kind is the kind enumeration type the generated accessor returns.
	Kind KindRef

	// Marker is the unexported method that seals the group. Every type
	// declaring it is a variant of this target.
	Marker string

	Variants []Variant

	Pos Position
}

// Schema is the root of the IR: everything needed to generate one file
// for one package.
type Schema struct {
	Package string
	Targets []Target
}

// Imports returns the package selectors the generated file will
// reference: kind annotations plus the conversion types of transparent
// positional variants, deduplicated in first-use order. The emitter
// resolves them against the source file imports.
func (s Schema) Imports() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(pkg string) {
		if pkg == "" {
			return
		}
		if _, ok := seen[pkg]; ok {
			return
		}
		seen[pkg] = struct{}{}
		out = append(out, pkg)
	}
	for _, t := range s.Targets {
		add(t.Kind.Pkg)
		for _, v := range t.Variants {
			if v.Kind != nil {
				add(v.Kind.Pkg)
			}
			if v.Transparent && v.Shape == ShapePositional {
				if i := strings.IndexByte(v.Payload.Type, '.'); i >= 0 {
					add(v.Payload.Type[:i])
				}
			}
		}
	}
	return out
}
