package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTrump()
	c.normalizeSearch()
	c.normalizeProbe()
	c.normalizeLogging()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InboxDir, err = expandPath(c.Paths.InboxDir); err != nil {
		return fmt.Errorf("paths.inbox_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.QuarantineDir) == "" {
		c.Paths.QuarantineDir = defaultQuarantineDir
	}
	if c.Paths.QuarantineDir, err = expandPath(c.Paths.QuarantineDir); err != nil {
		return fmt.Errorf("paths.quarantine_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTrump() {
	if c.Trump.MinDurationRatio <= 0 {
		c.Trump.MinDurationRatio = defaultMinDurationRatio
	}
	if c.Trump.MaxDurationRatio <= 0 {
		c.Trump.MaxDurationRatio = defaultMaxDurationRatio
	}
	if c.Trump.MinBitrateIncreaseKbps <= 0 {
		c.Trump.MinBitrateIncreaseKbps = defaultMinBitrateIncreaseKbps
	}
	c.Trump.Aggressiveness = strings.ToLower(strings.TrimSpace(c.Trump.Aggressiveness))
	if c.Trump.Aggressiveness == "" {
		c.Trump.Aggressiveness = defaultAggressiveness
	}
	c.Trump.MultiFilePolicy = strings.ToLower(strings.TrimSpace(c.Trump.MultiFilePolicy))
	if c.Trump.MultiFilePolicy == "" {
		c.Trump.MultiFilePolicy = defaultMultiFilePolicy
	}
}

func (c *Config) normalizeSearch() {
	c.Search.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Search.BaseURL), "/")
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = defaultSearchBaseURL
	}
	if c.Search.ConfidenceThreshold <= 0 {
		c.Search.ConfidenceThreshold = defaultSearchConfidenceThreshold
	}
	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = defaultSearchTimeoutSeconds
	}
	if c.Search.RequestsPerSecond <= 0 {
		c.Search.RequestsPerSecond = defaultSearchRequestsPerSecond
	}
}

func (c *Config) normalizeProbe() {
	c.Probe.Binary = strings.TrimSpace(c.Probe.Binary)
	if c.Probe.Binary == "" {
		c.Probe.Binary = defaultProbeBinary
	}
	if c.Probe.TimeoutSeconds <= 0 {
		c.Probe.TimeoutSeconds = defaultProbeTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
