package templates

import "embed"

// FS contains all template files embedded in the binary.
// This allows `go install` to work without external template files.
//
//go:embed *.tmpl
var FS embed.FS
