// Package asin extracts and validates Audible ASIN work identifiers.
//
// An ASIN is a ten character uppercase alphanumeric code beginning with "B"
// that names a specific audiobook edition. Extraction runs an ordered
// pattern cascade from most structured (the {ASIN.XXXXXXXXXX} tag used in
// curated folder names) to most permissive (a bare token), and every match
// passes through the same strict validator regardless of which pattern
// produced it.
package asin
