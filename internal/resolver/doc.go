// Package resolver finds the ASIN for a candidate folder by consulting
// heterogeneous sources in strict priority order: a pre-parsed folder hint,
// the folder name itself, contained file names, a sidecar metadata
// document, an embedded audio tag, and finally an opt-in external catalog
// search. The first successful source wins and signals from different
// sources are never merged, with one exception: a parseable sidecar
// identifier is authoritative and overrides a conflicting folder guess.
package resolver
