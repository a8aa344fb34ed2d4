package main

import (
	"testing"

	"github.com/jonhteper/errorkindgen/compiler"
)

func TestEveryStableCodeHasAnExplanation(t *testing.T) {
	for _, code := range compiler.StableErrorCodes {
		entry, ok := explanations[code]
		if !ok {
			t.Errorf("no explanation registered for %s", code)
			continue
		}
		if entry.Code != code {
			t.Errorf("explanation for %s has mismatched code %s", code, entry.Code)
		}
		if entry.Title == "" || entry.Description == "" || entry.Example == "" {
			t.Errorf("explanation for %s is incomplete", code)
		}
	}
}

func TestExplanationsHaveNoStrayEntries(t *testing.T) {
	known := map[string]struct{}{}
	for _, code := range compiler.StableErrorCodes {
		known[code] = struct{}{}
	}
	for code := range explanations {
		if _, ok := known[code]; !ok {
			t.Errorf("explanation for unknown code %s", code)
		}
	}
}
