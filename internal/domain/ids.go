package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the canonical string form of an identifier.
//
// Ids reach the core from path params, JSON bodies and token claims, and the
// same UUID may be spelled in upper case, wrapped in braces or prefixed with
// urn:uuid:. Anything uuid can parse is rewritten to its lowercase hyphenated
// form; other values are only trimmed.
func NormalizeID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed.String()
	}
	return trimmed
}

// SameID compares two identifiers after normalization.
func SameID(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}

// ValidID reports whether raw parses as a UUID, the form every stored id takes.
func ValidID(raw string) bool {
	_, err := uuid.Parse(strings.TrimSpace(raw))
	return err == nil
}
