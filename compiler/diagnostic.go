package compiler

import (
	"fmt"
	"sort"

	"github.com/jonhteper/errorkindgen/compiler/ir"
)

// Diagnostic is a single position-stamped finding produced while parsing
// or validating a package. Code is always one of StableErrorCodes.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s", d.File, d.Line, d.Column, d.Code, d.Message)
}

func diag(code string, pos ir.Position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    pos.File,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// sortDiagnostics orders findings by position so reports are stable
// regardless of the order declarations were visited in.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
