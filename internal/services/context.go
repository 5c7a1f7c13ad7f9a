package services

import "context"

type contextKey string

const (
	candidateKey contextKey = "candidate"
	asinKey      contextKey = "asin"
	runIDKey     contextKey = "run_id"
)

// WithCandidate annotates context with the source folder being imported.
func WithCandidate(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, candidateKey, path)
}

// CandidateFromContext extracts the candidate source path if present.
func CandidateFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(candidateKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithASIN annotates context with the resolved work identifier.
func WithASIN(ctx context.Context, asin string) context.Context {
	if asin == "" {
		return ctx
	}
	return context.WithValue(ctx, asinKey, asin)
}

// ASINFromContext extracts the resolved work identifier if present.
func ASINFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(asinKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with the import run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
