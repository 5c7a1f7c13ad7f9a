package config

import "shelfr/internal/trump"

// TrumpPrefs maps the [trump] section onto decision-engine preferences.
func (c *Config) TrumpPrefs() trump.Prefs {
	aggressiveness := trump.AggressivenessNormal
	if c.Trump.Aggressiveness == "conservative" {
		aggressiveness = trump.AggressivenessConservative
	}
	return trump.Prefs{
		MinDurationRatio:       c.Trump.MinDurationRatio,
		MaxDurationRatio:       c.Trump.MaxDurationRatio,
		MinBitrateIncreaseKbps: c.Trump.MinBitrateIncreaseKbps,
		PreferChapters:         c.Trump.PreferChapters,
		PreferStereo:           c.Trump.PreferStereo,
		Aggressiveness:         aggressiveness,
	}
}
