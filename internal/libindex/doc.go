// Package libindex builds the per-run, in-memory map of identifier to
// existing library entry. The index is constructed once from a single
// read-only enumeration at run start, passed by parameter to everything
// that needs it, and discarded when the run ends. It is never persisted.
package libindex
