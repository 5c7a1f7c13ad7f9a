// Package quality builds per-comparison quality snapshots of audiobook
// folders. A snapshot is never persisted: it is extracted fresh for each
// trump comparison and discarded afterward.
//
// Every measured field is independently optional. A field that could not be
// probed stays nil rather than defaulting to zero, so downstream decision
// logic can always distinguish "unknown" from "measured zero".
package quality
