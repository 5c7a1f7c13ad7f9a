package asin

import (
	"regexp"
	"strings"
)

// Length is the exact length of a valid ASIN.
const Length = 10

// Extraction patterns, most structured first. Ordering matters: the brace
// tag is unambiguous, labels are strong, the bare token pattern is a last
// resort that can match incidental text. Each captures the candidate code
// in group 1.
var patterns = []*regexp.Regexp{
	// {ASIN.B002V5BP2C}: curated library folder tag.
	regexp.MustCompile(`(?i)\{ASIN[.:]\s*([A-Z0-9]{10})\}`),
	// [B002V5BP2C]: bracketed tag, common in release folder names.
	regexp.MustCompile(`(?i)\[([B][A-Z0-9]{9})\]`),
	// "ASIN: B002V5BP2C", "asin=B002V5BP2C", "ASIN B002V5BP2C".
	regexp.MustCompile(`(?i)\bASIN[\s:=-]+([A-Z0-9]{10})\b`),
	// Bare token at a word boundary. Permissive; validation gates it.
	regexp.MustCompile(`\b(B[A-Z0-9]{9})\b`),
}

// Extract scans text for an ASIN using the ordered pattern cascade. The
// first pattern to match wins, but its capture is only returned after
// passing Valid, so no pattern can yield a syntactically invalid result.
func Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := Normalize(match[1])
		if Valid(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Valid reports whether value is a well-formed ASIN: exactly ten characters,
// uppercase A-Z/0-9 only, leading "B". Validation is independent of
// extraction so callers holding codes from sidecars or search responses can
// apply the same rule.
func Valid(value string) bool {
	if len(value) != Length {
		return false
	}
	if value[0] != 'B' {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Normalize uppercases and trims a candidate code so case-insensitive
// sources (file names, sidecar fields) validate uniformly.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
