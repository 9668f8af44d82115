package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// tagRegex matches dotted expression tags such as "Diagramming.Tree" or
// "Math.Arithmetic.Addition".
var tagRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)*$`)

// ValidateTag validates an expression tag read from a source document.
//
// Tags are used as type identifiers and end up as label text in converted
// trees, so the rules are conservative:
//   - No empty tags
//   - Maximum length of 256 characters
//   - Dot-separated identifiers only
func ValidateTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidDocument, "tag cannot be empty")
	}
	if len(tag) > 256 {
		return New(ErrCodeInvalidDocument, "tag too long (max 256 characters)")
	}
	if !tagRegex.MatchString(tag) {
		return New(ErrCodeInvalidDocument, "invalid tag: %q", tag)
	}
	return nil
}

// ValidatePath validates a relative file path used to address stored
// documents or rendered artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
