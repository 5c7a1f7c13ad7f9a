// Package logging builds the application slog logger and provides shared
// attribute helpers so components log decisions and failures consistently.
//
// Two output formats are supported: a human console format used when shelfr
// runs interactively, and JSON for log aggregation. Components obtain a
// namespaced logger via NewComponentLogger and enrich per-candidate records
// through WithContext, which lifts identifiers (candidate path, ASIN, run
// id) out of the request context.
package logging
