package pathutil

import (
	"fmt"
	"strings"
)

// IsLocalRef reports whether ref is a fragment-only pointer into the containing document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// SplitPointer splits a local reference into unescaped JSON Pointer tokens.
// "#" and "#/" yield no tokens (the document root).
func SplitPointer(ref string) ([]string, error) {
	if !IsLocalRef(ref) {
		return nil, fmt.Errorf("pathutil: %q is not a local reference", ref)
	}
	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" || pointer == "/" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("pathutil: %q is not a JSON pointer", ref)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, part := range parts {
		parts[i] = UnescapeToken(part)
	}
	return parts, nil
}

// UnescapeToken unescapes a JSON Pointer token.
// Per RFC 6901, ~1 represents / and ~0 represents ~
func UnescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// EscapeToken is the inverse of UnescapeToken.
func EscapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}
