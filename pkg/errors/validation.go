package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIterations bounds round-trip runs requested from outside the process.
const MaxIterations = 1000

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a path the tool is about to create.
// On top of [ValidatePath] it rejects directories ("out/") and paths that
// would overwrite the input file.
func ValidateOutputPath(path, input string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}
	if input != "" && filepath.Clean(path) == filepath.Clean(input) {
		return New(ErrCodeInvalidPath, "output path %q would overwrite the input", path)
	}
	return nil
}

// ValidateIterations checks a requested round-trip count.
// Zero is valid and means "load only".
func ValidateIterations(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "iterations cannot be negative (got %d)", n)
	}
	if n > MaxIterations {
		return New(ErrCodeInvalidInput, "iterations too large (max %d, got %d)", MaxIterations, n)
	}
	return nil
}
