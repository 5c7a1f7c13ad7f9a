package logging

import (
	"context"
	"log/slog"

	"shelfr/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCandidate is the standardized structured logging key for candidate source paths.
	FieldCandidate = "candidate"
	// FieldASIN is the standardized structured logging key for resolved work identifiers.
	FieldASIN = "asin"
	// FieldRunID is the standardized structured logging key for import run correlation identifiers.
	FieldRunID = "run_id"
	// FieldDecisionType is the standardized structured logging key for decision categories.
	FieldDecisionType = "decision_type"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if path, ok := services.CandidateFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCandidate, path))
	}
	if asin, ok := services.ASINFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldASIN, asin))
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
