package parser

import (
	"strings"

	"github.com/jonhteper/errorkindgen/compiler/ir"
)

// DirectivePrefix is the machine-directive comment prefix the scanner
// recognizes. Following the go:generate convention there is no space
// between the comment marker and the prefix.
const DirectivePrefix = "//errorkind:"

// Directive verbs. The scanner records verbs verbatim; the semantic
// stage decides whether a verb and its arguments are well formed.
const (
	VerbTarget      = "target"
	VerbKind        = "kind"
	VerbTransparent = "transparent"
)

// Directive is one `//errorkind:` comment attached to a type
// declaration.
type Directive struct {
	Verb string
	Args []string
	Raw  string
	Pos  ir.Position
}

// parseDirective splits a raw comment line into verb and arguments.
// Returns ok=false when the line is not an errorkind directive at all.
func parseDirective(line string, pos ir.Position) (Directive, bool) {
	if !strings.HasPrefix(line, DirectivePrefix) {
		return Directive{}, false
	}
	rest := strings.TrimPrefix(line, DirectivePrefix)
	fields := strings.Fields(rest)
	d := Directive{Raw: strings.TrimSpace(rest), Pos: pos}
	if len(fields) > 0 {
		d.Verb = fields[0]
		d.Args = fields[1:]
	}
	return d, true
}
