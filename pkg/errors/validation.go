package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateObjectKey validates an object-store key for safety.
//
// The rules are conservative so the same key works for S3, MongoDB and the
// local directory store:
//   - Key cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute keys (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateObjectKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "object key cannot be empty")
	}

	const maxKeyLength = 500
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "object key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "object key contains invalid characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidKey, "object key must be relative (cannot start with /)")
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "object key cannot contain path traversal sequences (..)")
	}

	if strings.Contains(key, "\\") {
		return New(ErrCodeInvalidKey, "object key cannot contain backslashes")
	}

	return nil
}

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a Python package name per PEP 508.
func ValidatePythonPackageName(name string) error {
	if name == "" {
		return New(ErrCodeParseFailure, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeParseFailure, "package name too long (max 256 characters)")
	}
	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeParseFailure, "invalid Python package name: %q", name)
	}
	return nil
}
