// Package services provides shared infrastructure for collaborator
// integrations: a sentinel error taxonomy for failure classification and
// context annotation helpers that carry per-candidate identifiers through
// the import pipeline.
package services
