package trump

// Decision is the outcome category of a trump comparison.
type Decision string

const (
	KeepExisting   Decision = "KEEP_EXISTING"
	KeepBoth       Decision = "KEEP_BOTH"
	ReplaceWithNew Decision = "REPLACE_WITH_NEW"
	RejectNew      Decision = "REJECT_NEW"
)

// Aggressiveness tunes how readily the engine replaces existing copies.
type Aggressiveness string

const (
	// AggressivenessNormal applies every rule as written.
	AggressivenessNormal Aggressiveness = "normal"
	// AggressivenessConservative demotes replacements back to KeepExisting
	// unless the reason cites a format upgrade.
	AggressivenessConservative Aggressiveness = "conservative"
)

// Prefs carries the decision thresholds. All of them come from
// configuration and are captured in the archive sidecar.
type Prefs struct {
	MinDurationRatio       float64
	MaxDurationRatio       float64
	MinBitrateIncreaseKbps int
	PreferChapters         bool
	PreferStereo           bool
	Aggressiveness         Aggressiveness
}

// DefaultPrefs returns the stock thresholds.
func DefaultPrefs() Prefs {
	return Prefs{
		MinDurationRatio:       0.9,
		MaxDurationRatio:       1.25,
		MinBitrateIncreaseKbps: 64,
		PreferChapters:         true,
		PreferStereo:           false,
		Aggressiveness:         AggressivenessNormal,
	}
}

// Outcome is a decision with its audit reason and the rule that produced it.
type Outcome struct {
	Decision Decision
	Reason   string
	Rule     string
}
