package compiler

const (
	// Parse stage
	ErrCodePackageLoad     = "PARSE_PACKAGE_LOAD_ERROR"
	ErrCodeDirectiveSyntax = "DIRECTIVE_SYNTAX_ERROR"

	// Validate stage
	ErrCodeTargetNotInterface      = "TARGET_NOT_INTERFACE_ERROR"
	ErrCodeTargetNotSealed         = "TARGET_NOT_SEALED_ERROR"
	ErrCodeTargetDuplicate         = "TARGET_DUPLICATE_ERROR"
	ErrCodeTargetMissing           = "TARGET_MISSING_ERROR"
	ErrCodeTargetEmpty             = "TARGET_EMPTY_ERROR"
	ErrCodeVariantMissingDirective = "VARIANT_MISSING_DIRECTIVE_ERROR"
	ErrCodeVariantOrphan           = "VARIANT_ORPHAN_ERROR"
	ErrCodeVariantConflict         = "VARIANT_CONFLICT_ERROR"
	ErrCodeTransparentArity        = "TRANSPARENT_ARITY_ERROR"

	// Emit stage
	ErrCodeEmitRender = "EMIT_RENDER_ERROR"
	ErrCodeEmitWrite  = "EMIT_WRITE_ERROR"
)

// StableErrorCodes is the canonical registry of generator stage error codes.
// Codes are part of the CLI contract: scripts and editors match on them, so
// entries may be added but never renamed or removed.
var StableErrorCodes = []string{
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
