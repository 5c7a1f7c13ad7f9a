// Package trump decides whether an incoming audiobook copy should replace
// an existing library copy of the same work.
//
// The engine is a pure function over two quality snapshots and a preference
// set. It is implemented as an ordered chain of named rules with early
// exit: identity guards first, then duration sanity, then quality
// comparisons, then tie-breakers, then a safe default. Identical inputs
// always produce an identical decision and reason text, which the archive
// sidecar depends on.
package trump
