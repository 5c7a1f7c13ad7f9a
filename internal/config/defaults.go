package config

const (
	defaultInboxDir      = "~/inbox"
	defaultLibraryDir    = "~/audiobooks"
	defaultArchiveDir    = "~/.local/share/shelfr/archive"
	defaultQuarantineDir = "~/.local/share/shelfr/quarantine"
	defaultLogDir        = "~/.local/share/shelfr/logs"

	defaultMinDurationRatio       = 0.9
	defaultMaxDurationRatio       = 1.25
	defaultMinBitrateIncreaseKbps = 64
	defaultAggressiveness         = "normal"
	defaultMultiFilePolicy        = "skip"

	defaultSearchBaseURL             = "https://api.audible.com/1.0"
	defaultSearchConfidenceThreshold = 0.85
	defaultSearchTimeoutSeconds      = 15
	defaultSearchRequestsPerSecond   = 2.0

	defaultProbeBinary         = "ffprobe"
	defaultProbeTimeoutSeconds = 30

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultHistoryPath = "~/.local/share/shelfr/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir:      defaultInboxDir,
			LibraryDir:    defaultLibraryDir,
			ArchiveDir:    defaultArchiveDir,
			QuarantineDir: defaultQuarantineDir,
			LogDir:        defaultLogDir,
		},
		Trump: Trump{
			Enabled:                true,
			MinDurationRatio:       defaultMinDurationRatio,
			MaxDurationRatio:       defaultMaxDurationRatio,
			MinBitrateIncreaseKbps: defaultMinBitrateIncreaseKbps,
			PreferChapters:         true,
			PreferStereo:           false,
			Aggressiveness:         defaultAggressiveness,
			MultiFilePolicy:        defaultMultiFilePolicy,
		},
		Search: Search{
			Enabled:             false,
			BaseURL:             defaultSearchBaseURL,
			ConfidenceThreshold: defaultSearchConfidenceThreshold,
			TimeoutSeconds:      defaultSearchTimeoutSeconds,
			RequestsPerSecond:   defaultSearchRequestsPerSecond,
		},
		Probe: Probe{
			Binary:         defaultProbeBinary,
			TimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
