package errors

import (
	"strings"
	"unicode"
)

// maxFileNameLength matches the common filesystem limit for a single path element.
const maxFileNameLength = 255

// ValidateFileName validates an export file name for safety.
// It ensures the name is a simple basename that cannot escape the output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 bytes
//   - No null bytes or control characters
//   - No path separators (/ or \)
//   - Not "." or ".." and no ".." sequences
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if len(name) > maxFileNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters)", maxFileNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if name == "." || strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "file name cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateDir validates an output directory path.
// Unlike file names, directories may be absolute, but must not contain
// control characters.
func ValidateDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "directory cannot be empty")
	}
	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "directory contains invalid characters")
		}
	}
	return nil
}
