package compiler

import "testing"

func TestStableErrorCodesAreUniqueAndNonEmpty(t *testing.T) {
	seen := map[string]struct{}{}
	for _, code := range StableErrorCodes {
		if code == "" {
			t.Fatalf("found empty error code in registry")
		}
		if _, ok := seen[code]; ok {
			t.Fatalf("duplicate error code in registry: %s", code)
		}
		seen[code] = struct{}{}
	}
}

func TestStableErrorCodesCoverAllDeclaredCodes(t *testing.T) {
	declared := []string{
		ErrCodePackageLoad,
		ErrCodeDirectiveSyntax,
		ErrCodeTargetNotInterface,
		ErrCodeTargetNotSealed,
		ErrCodeTargetDuplicate,
		ErrCodeTargetMissing,
	ErrCodeTargetEmpty,
		ErrCodeVariantMissingDirective,
		ErrCodeVariantOrphan,
		ErrCodeVariantConflict,
		ErrCodeTransparentArity,
		ErrCodeEmitRender,
		ErrCodeEmitWrite,
	}
	registry := map[string]struct{}{}
	for _, code := range StableErrorCodes {
		registry[code] = struct{}{}
	}
	for _, code := range declared {
		if _, ok := registry[code]; !ok {
			t.Fatalf("code %s is missing from StableErrorCodes", code)
		}
	}
}
