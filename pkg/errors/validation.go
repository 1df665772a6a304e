package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// MaxNameLength bounds element names.
const MaxNameLength = 256

// DocumentExtensions lists the file extensions the document codecs accept.
var DocumentExtensions = []string{".json", ".toml"}

// ValidateElementName validates an element name. Names are lookup keys for
// saved editor metadata, so they must be non-empty printable single-line
// strings.
//
// Validation rules:
//   - Name cannot be empty or whitespace only
//   - Maximum length of 256 characters
//   - No control characters (newlines, tabs, null bytes)
func ValidateElementName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "element name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "element name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "element name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a document file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateDocumentPath validates path and checks that its extension selects
// a known document codec.
func ValidateDocumentPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(DocumentExtensions, ext) {
		return New(ErrCodeUnsupported, "unsupported document format %q (want one of %s)", ext, strings.Join(DocumentExtensions, ", "))
	}

	return nil
}
