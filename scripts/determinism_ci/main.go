// Command determinism_ci regenerates every annotated package in the
// example service twice with -dry-run and fails on any byte drift, and
// verifies the checked-in generated files match a fresh run.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

var packages = []string{
	"examples/ordersvc/internal/storage",
	"examples/ordersvc/internal/cache",
	"examples/ordersvc/internal/events",
	"examples/ordersvc/internal/blob",
	"examples/ordersvc/internal/service",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "determinism check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK: generation is deterministic and checked-in files are current")
}

func run() error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		dir := filepath.Join(projectRoot, pkg)

		first, err := render(projectRoot, dir)
		if err != nil {
			return err
		}
		second, err := render(projectRoot, dir)
		if err != nil {
			return err
		}
		if sum(first) != sum(second) {
			return fmt.Errorf("%s: drift detected between two runs", pkg)
		}

		checkedIn, err := os.ReadFile(filepath.Join(dir, "errorkind_gen.go"))
		if err != nil {
			return fmt.Errorf("%s: read checked-in file: %w", pkg, err)
		}
		if !bytes.Equal(bytes.TrimSpace(checkedIn), bytes.TrimSpace(first)) {
			return fmt.Errorf("%s: checked-in errorkind_gen.go is stale, re-run go generate", pkg)
		}
	}
	return nil
}

func render(projectRoot, dir string) ([]byte, error) {
	cmd := exec.Command("go", "run", "./cmd/errorkindgen", "generate", "-dry-run", dir)
	cmd.Dir = projectRoot
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("generate %s: %w", dir, err)
	}
	return out.Bytes(), nil
}

func sum(b []byte) [32]byte {
	return sha256.Sum256(b)
}
