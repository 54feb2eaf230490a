package errors

import (
	"os"
	"slices"
	"strings"
	"unicode"
)

// ValidateInputPath validates an edge-list path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must exist and must not be a directory
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, ignoring case and
// surrounding whitespace. The returned error carries code and names the
// accepted values.
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if slices.Contains(allowed, v) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}
