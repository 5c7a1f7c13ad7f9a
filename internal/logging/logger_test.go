package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"shelfr/internal/services"
)

func newBufferLogger(t *testing.T, format string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(buf, levelVar)
	default:
		handler = newConsoleHandler(buf, levelVar)
	}
	return slog.New(handler), buf
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")
	NewComponentLogger(logger, "resolver").Info("cascade exhausted", String("source", "none"))

	line := buf.String()
	if !strings.Contains(line, " resolver: cascade exhausted") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if !strings.Contains(line, "source=none") {
		t.Fatalf("attribute missing: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not repeat as k=v: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")
	logger.Info("placed", String("target", "/library/Some Author/Some Book"))
	if !strings.Contains(buf.String(), `target="/library/Some Author/Some Book"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestWithContextAddsCandidateFields(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")
	ctx := services.WithCandidate(context.Background(), "/inbox/book")
	ctx = services.WithASIN(ctx, "B002V5BP2C")

	WithContext(ctx, logger).Info("resolved")
	line := buf.String()
	if !strings.Contains(line, "candidate=/inbox/book") || !strings.Contains(line, "asin=B002V5BP2C") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatal("unknown level should default to info")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("debug level not parsed")
	}
}
