package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// typeNameRegex matches resource type names such as "File", "Class" or
// "Apache::Vhost".
var typeNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(::[A-Za-z][A-Za-z0-9_]*)*$`)

// ValidateReference validates the two halves of a resource reference
// "Type[title]". Titles may contain almost anything (paths, spaces) but not
// control characters or unbalanced brackets.
func ValidateReference(typ, title string) error {
	if err := ValidateType(typ); err != nil {
		return err
	}
	if title == "" {
		return New(ErrCodeInvalidReference, "resource title cannot be empty for %s", typ)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidReference, "resource title contains control characters: %q", title)
		}
	}
	if strings.Count(title, "[") != strings.Count(title, "]") {
		return New(ErrCodeInvalidReference, "resource title has unbalanced brackets: %q", title)
	}
	return nil
}

// ValidateType validates a resource type name such as "File" or
// "Apache::Vhost".
func ValidateType(typ string) error {
	if typ == "" {
		return New(ErrCodeInvalidReference, "resource type cannot be empty")
	}
	if !typeNameRegex.MatchString(typ) {
		return New(ErrCodeInvalidReference, "invalid resource type: %q", typ)
	}
	return nil
}

// nameRegex matches event and callback names.
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName validates an event or callback name. Empty names are allowed
// and mean "none".
func ValidateName(kind, name string) error {
	if name == "" {
		return nil
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidName, "%s name too long (max 128 characters)", kind)
	}
	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid %s name: %q", kind, name)
	}
	return nil
}

// ValidatePath validates a relative output path (for example a graph file
// name) for safety.
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
		return New(ErrCodeInvalidPath, "path must be relative")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain '..'")
		}
	}
	return nil
}
