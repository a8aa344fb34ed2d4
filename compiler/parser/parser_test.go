package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const errorsSrc = `package storage

import (
	"fmt"

	k "example.com/demo/kinds"
)

//errorkind:target k.Kind
type StorageError interface {
	error
	Kind() k.Kind
	storageError()
}

//errorkind:kind k.NotFound
type OrderNotFound struct{}

func (OrderNotFound) storageError() {}

func (OrderNotFound) Error() string { return "order not found" }

//errorkind:kind k.Internal
type QueryFailed struct {
	Query string
	Err   error
}

func (QueryFailed) storageError() {}

func (e QueryFailed) Error() string { return fmt.Sprintf("query %q: %v", e.Query, e.Err) }

//errorkind:transparent
type Wrapped StorageErrorDetails

func (Wrapped) storageError() {}

type StorageErrorDetails struct{}
`

func TestParseDirCollectsDeclarations(t *testing.T) {
	dir := writePackage(t, map[string]string{"errors.go": errorsSrc})

	pkg, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if pkg.Name != "storage" {
		t.Fatalf("package = %q, want storage", pkg.Name)
	}

	iface := pkg.Type("StorageError")
	if iface == nil || iface.Kind != KindInterface {
		t.Fatalf("StorageError not scanned as interface: %+v", iface)
	}
	if len(iface.Markers) != 1 || iface.Markers[0] != "storageError" {
		t.Fatalf("markers = %v, want [storageError]", iface.Markers)
	}
	if len(iface.Directives) != 1 || iface.Directives[0].Verb != VerbTarget {
		t.Fatalf("target directive not found: %+v", iface.Directives)
	}

	unit := pkg.Type("OrderNotFound")
	if unit == nil || unit.Kind != KindStruct || len(unit.Fields) != 0 {
		t.Fatalf("OrderNotFound should be a zero-field struct: %+v", unit)
	}

	named := pkg.Type("QueryFailed")
	if named == nil || len(named.Fields) != 2 {
		t.Fatalf("QueryFailed fields not scanned: %+v", named)
	}
	if named.Fields[0].Name != "Query" || named.Fields[1].Type != "error" {
		t.Fatalf("unexpected fields: %+v", named.Fields)
	}

	positional := pkg.Type("Wrapped")
	if positional == nil || positional.Kind != KindOther || positional.Underlying != "StorageErrorDetails" {
		t.Fatalf("Wrapped should be a defined type over StorageErrorDetails: %+v", positional)
	}

	if got := pkg.MarkersOf("OrderNotFound"); len(got) != 1 || got[0] != "storageError" {
		t.Fatalf("MarkersOf(OrderNotFound) = %v", got)
	}
	if got := pkg.MarkersOf("StorageErrorDetails"); len(got) != 0 {
		t.Fatalf("MarkersOf(StorageErrorDetails) = %v, want none", got)
	}

	if path, ok := pkg.Imports["k"]; !ok || path != "example.com/demo/kinds" {
		t.Fatalf("aliased import not recorded: %v", pkg.Imports)
	}
}

func TestParseDirSkipsTestAndGeneratedFiles(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"errors.go": "package storage\n\ntype Real struct{}\n",
		"errors_test.go": "package storage\n\ntype FromTest struct{}\n",
		"errorkind_gen.go": "// Code generated by errorkindgen. DO NOT EDIT.\n\npackage storage\n\ntype FromGenerated struct{}\n",
	})

	pkg, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if pkg.Type("Real") == nil {
		t.Fatalf("Real not scanned")
	}
	if pkg.Type("FromTest") != nil {
		t.Fatalf("test file should be skipped")
	}
	if pkg.Type("FromGenerated") != nil {
		t.Fatalf("generated file should be skipped")
	}
}

func TestParseDirRejectsBrokenSource(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"broken.go": "package storage\n\nfunc (",
	})
	if _, err := ParseDir(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseDirRejectsEmptyDir(t *testing.T) {
	if _, err := ParseDir(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestParseDirRejectsMixedPackages(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"a.go": "package one\n",
		"b.go": "package two\n",
	})
	if _, err := ParseDir(dir); err == nil {
		t.Fatalf("expected error for mixed package clauses")
	}
}

func TestReceiverBaseHandlesPointersAndGenerics(t *testing.T) {
	dir := writePackage(t, map[string]string{"x.go": `package p

type Box[T any] struct{}

type Plain struct{}

func (b *Box[T]) boxMarker()  {}
func (p *Plain) plainMarker() {}
`})
	pkg, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if got := pkg.MarkersOf("Box"); len(got) != 1 || got[0] != "boxMarker" {
		t.Fatalf("generic receiver not resolved: %v", got)
	}
	if got := pkg.MarkersOf("Plain"); len(got) != 1 || got[0] != "plainMarker" {
		t.Fatalf("pointer receiver not resolved: %v", got)
	}
}
