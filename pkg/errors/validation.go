package errors

import (
	"strings"
	"unicode"
)

// ValidatePartName validates a part or sub-model filename referenced from a
// placement line. Names come straight out of untrusted model files and are
// later joined onto library search paths, so anything that could escape a
// library directory is rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., leading / or \)
//   - Maximum length of 256 characters
func ValidatePartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "part name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "part name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "part name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "part name contains parent directory reference")
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") {
		return New(ErrCodeInvalidPath, "part name cannot be an absolute path")
	}
	if strings.Contains(name, "\x00") {
		return New(ErrCodeInvalidInput, "part name contains a null byte")
	}

	return nil
}

// ValidateModelPath validates a user-supplied model file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateModelPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "model path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "model path too long (max 500 characters)")
	}

	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "model path contains invalid control characters")
		}
	}

	return nil
}
