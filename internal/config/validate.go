package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTrump(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateProbe(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InboxDir) == "" {
		return errors.New("paths.inbox_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	return nil
}

func (c *Config) validateTrump() error {
	if !c.Trump.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shelfr/config.toml"
		}
		return fmt.Errorf("paths.archive_dir is required when trump.enabled is true: replaced folders are archived, never deleted. Set it in %s or disable trumping", defaultPath)
	}
	if c.Trump.MinDurationRatio >= 1 {
		return errors.New("trump.min_duration_ratio must be below 1")
	}
	if c.Trump.MaxDurationRatio <= 1 {
		return errors.New("trump.max_duration_ratio must be above 1")
	}
	switch c.Trump.Aggressiveness {
	case "normal", "conservative":
	default:
		return fmt.Errorf("trump.aggressiveness must be %q or %q, got %q", "normal", "conservative", c.Trump.Aggressiveness)
	}
	switch c.Trump.MultiFilePolicy {
	case "skip", "warn", "overwrite":
	default:
		return fmt.Errorf("trump.multi_file_policy must be one of skip, warn, overwrite, got %q", c.Trump.MultiFilePolicy)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if !c.Search.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Search.BaseURL) == "" {
		return errors.New("search.base_url must be set when search.enabled is true")
	}
	if c.Search.ConfidenceThreshold < 0 || c.Search.ConfidenceThreshold > 1 {
		return errors.New("search.confidence_threshold must be between 0 and 1")
	}
	if c.Search.TimeoutSeconds <= 0 {
		return errors.New("search.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateProbe() error {
	if c.Probe.TimeoutSeconds <= 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	return nil
}
