// Package testsupport provides per-test configuration and filesystem
// helpers shared across package tests.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"shelfr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InboxDir = filepath.Join(base, "inbox")
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.ArchiveDir = filepath.Join(base, "archive")
	cfgVal.Paths.QuarantineDir = filepath.Join(base, "quarantine")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithSearchEnabled turns on external search against the given base URL.
func WithSearchEnabled(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Enabled = true
		b.cfg.Search.BaseURL = baseURL
	}
}

// WithMultiFilePolicy overrides the duplicate multi-file policy.
func WithMultiFilePolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Trump.MultiFilePolicy = policy
	}
}

// WithStubbedFFprobe writes a stub ffprobe emitting the given JSON payload
// and prepends its directory to PATH. An empty payload exits nonzero, which
// exercises the format-only degradation path.
func WithStubbedFFprobe(payload string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := "#!/bin/sh\nexit 1\n"
		if payload != "" {
			script = fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", payload)
		}
		target := filepath.Join(binDir, "ffprobe")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub ffprobe: %v", err)
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InboxDir)
}
