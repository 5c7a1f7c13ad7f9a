package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InboxDir      string `toml:"inbox_dir"`
	LibraryDir    string `toml:"library_dir"`
	ArchiveDir    string `toml:"archive_dir"`
	QuarantineDir string `toml:"quarantine_dir"`
	LogDir        string `toml:"log_dir"`
}

// Trump contains configuration for the duplicate-replacement decision
// engine.
type Trump struct {
	Enabled                bool    `toml:"enabled"`
	MinDurationRatio       float64 `toml:"min_duration_ratio"`
	MaxDurationRatio       float64 `toml:"max_duration_ratio"`
	MinBitrateIncreaseKbps int     `toml:"min_bitrate_increase_kbps"`
	PreferChapters         bool    `toml:"prefer_chapters"`
	PreferStereo           bool    `toml:"prefer_stereo"`
	Aggressiveness         string  `toml:"aggressiveness"`
	MultiFilePolicy        string  `toml:"multi_file_policy"`
}

// Search contains configuration for the external metadata search.
type Search struct {
	Enabled             bool    `toml:"enabled"`
	BaseURL             string  `toml:"base_url"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	TimeoutSeconds      int     `toml:"timeout_seconds"`
	RequestsPerSecond   float64 `toml:"requests_per_second"`
}

// Probe contains configuration for media inspection.
type Probe struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History contains configuration for the run-result ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for shelfr.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Trump   Trump   `toml:"trump"`
	Search  Search  `toml:"search"`
	Probe   Probe   `toml:"probe"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shelfr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shelfr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories an import run writes to.
// LibraryDir is created on a best-effort basis so commands that only read
// can run when external storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.InboxDir, c.Paths.LogDir, c.Paths.QuarantineDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		_ = os.MkdirAll(c.Paths.LibraryDir, 0o755)
	}
	if c.Trump.Enabled && strings.TrimSpace(c.Paths.ArchiveDir) != "" {
		if err := os.MkdirAll(c.Paths.ArchiveDir, 0o755); err != nil {
			return fmt.Errorf("create archive directory %q: %w", c.Paths.ArchiveDir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the media-inspection executable name.
func (c *Config) FFprobeBinary() string {
	return c.Probe.Binary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
