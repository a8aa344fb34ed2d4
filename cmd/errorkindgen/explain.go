package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonhteper/errorkindgen/compiler"
)

type explainEntry struct {
	Code        string
	Title       string
	Description string
	Example     string
}

var explanations = map[string]explainEntry{
	compiler.ErrCodePackageLoad: {
		Code:        compiler.ErrCodePackageLoad,
		Title:       "Package directory could not be loaded",
		Description: "The directory does not exist, contains no Go files, or a file has syntax errors. errorkindgen parses plain Go source; fix the compile errors first.",
		Example:     "errorkindgen generate ./internal/storage",
	},
	compiler.ErrCodeDirectiveSyntax: {
		Code:        compiler.ErrCodeDirectiveSyntax,
		Title:       "Malformed errorkind directive",
		Description: "Directives are `//errorkind:target KindType`, `//errorkind:kind KindConst` or `//errorkind:transparent`, written in the doc comment of a type declaration with no space after `//`.",
		Example:     "//errorkind:kind kinds.NotFound",
	},
	compiler.ErrCodeTargetNotInterface: {
		Code:        compiler.ErrCodeTargetNotInterface,
		Title:       "errorkind:target on a non-interface type",
		Description: "A target is the sealed interface of an error group. Structs and defined types are variants; annotate them with errorkind:kind or errorkind:transparent instead.",
		Example:     "//errorkind:target kinds.Kind\ntype StorageError interface {\n\terror\n\tstorageError()\n}",
	},
	compiler.ErrCodeTargetNotSealed: {
		Code:        compiler.ErrCodeTargetNotSealed,
		Title:       "Target interface has no marker method",
		Description: "The group is sealed by an unexported method with no parameters and no results, declared in the interface body. Every variant declares that method; errorkindgen uses it to find the members.",
		Example:     "type StorageError interface {\n\terror\n\tstorageError()\n}\n\nfunc (OrderNotFound) storageError() {}",
	},
	compiler.ErrCodeTargetDuplicate: {
		Code:        compiler.ErrCodeTargetDuplicate,
		Title:       "Two targets share one marker method name",
		Description: "Marker method names identify the group a variant belongs to, so they must be unique per package. Rename one of the markers.",
		Example:     "type StorageError interface{ storageError() }\ntype CacheError interface{ cacheError() }",
	},
	compiler.ErrCodeTargetMissing: {
		Code:        compiler.ErrCodeTargetMissing,
		Title:       "No target declares the group",
		Description: "A variant directive was found but the package declares no matching errorkind:target interface, or the -type flag names a target that does not exist.",
		Example:     "//errorkind:target kinds.Kind\ntype StorageError interface {\n\terror\n\tstorageError()\n}",
	},
	compiler.ErrCodeTargetEmpty: {
		Code:        compiler.ErrCodeTargetEmpty,
		Title:       "Target has no variants",
		Description: "The sealed interface exists but no concrete type declares its marker method. An empty group generates nothing, which is almost always a mistake.",
		Example:     "type OrderNotFound struct{}\n\nfunc (OrderNotFound) storageError() {}",
	},
	compiler.ErrCodeVariantMissingDirective: {
		Code:        compiler.ErrCodeVariantMissingDirective,
		Title:       "Variant lacks a kind annotation",
		Description: "Every type that declares a group's marker method must say how it is classified: errorkind:kind for a literal kind, or errorkind:transparent to delegate to its payload.",
		Example:     "//errorkind:kind kinds.NotFound\ntype OrderNotFound struct{}",
	},
	compiler.ErrCodeVariantOrphan: {
		Code:        compiler.ErrCodeVariantOrphan,
		Title:       "Variant directive on a type outside any group",
		Description: "errorkind:kind and errorkind:transparent only apply to types that declare a target's marker method. Add the marker method, or remove the directive.",
		Example:     "func (OrderNotFound) storageError() {}",
	},
	compiler.ErrCodeVariantConflict: {
		Code:        compiler.ErrCodeVariantConflict,
		Title:       "Conflicting variant annotations",
		Description: "A variant carries several errorkind directives, or declares the markers of several targets. Each variant maps to exactly one group and one classification rule.",
		Example:     "//errorkind:kind kinds.Internal\ntype QueryFailed struct{ Err error }",
	},
	compiler.ErrCodeTransparentArity: {
		Code:        compiler.ErrCodeTransparentArity,
		Title:       "Transparent variant without exactly one payload",
		Description: "A transparent variant forwards to its payload's own accessor, so it needs exactly one payload: a single-field struct, or a defined type over a named type that has the accessor.",
		Example:     "//errorkind:transparent\ntype StorageFailure struct{ Inner storage.StorageError }",
	},
	compiler.ErrCodeEmitRender: {
		Code:        compiler.ErrCodeEmitRender,
		Title:       "Generated source failed to render",
		Description: "The rendered file did not survive gofmt or import resolution. This usually means a kind reference names a package that cannot be resolved from the output directory.",
		Example:     "//errorkind:target kinds.Kind  // `kinds` must be importable from the package",
	},
	compiler.ErrCodeEmitWrite: {
		Code:        compiler.ErrCodeEmitWrite,
		Title:       "Generated file could not be written",
		Description: "Writing the output file failed, typically a permissions or read-only filesystem problem. Use -dry-run to inspect the output without writing.",
		Example:     "errorkindgen generate -dry-run ./internal/storage",
	},
}

func runExplain(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: errorkindgen explain <CODE>")
		os.Exit(1)
	}
	code := strings.ToUpper(strings.TrimSpace(args[0]))
	if entry, ok := explanations[code]; ok {
		fmt.Printf("%s\n%s\n\nExample:\n%s\n", entry.Title, entry.Description, entry.Example)
		return
	}
	fmt.Printf("Unknown code: %s\n", code)
	os.Exit(1)
}
