package quality

import "strings"

// Meta is an immutable quality snapshot of one audiobook copy. Pointer
// fields are nil when the measurement is unavailable.
type Meta struct {
	ASIN        string
	Format      string // lowercase container extension without dot; "" = unknown
	BitrateKbps *int
	SampleRate  *int // Hz
	DurationSec *int
	HasChapters *bool
	Stereo      *bool
	Language    string // "" = unknown
	Abridged    *bool
	Narrator    string
	SourcePath  string
}

// formatTiers ranks container formats for long-form spoken-word audio.
// The ordering weighs chapter support and audiobook app compatibility, not
// general audio fidelity: a chaptered m4b outranks lossless flac because a
// 40-hour book without chapters is a usability regression.
var formatTiers = map[string]int{
	"m4b":  6,
	"m4a":  5,
	"mp3":  4,
	"opus": 3,
	"ogg":  2,
	"flac": 2,
	"wav":  1,
}

// FormatTier returns the spoken-word suitability rank of the snapshot's
// container format. Unknown formats rank 0, below every known format.
func (m Meta) FormatTier() int {
	return formatTiers[strings.ToLower(m.Format)]
}

// HasQualityFields reports whether any measured quality field is present.
// A snapshot without quality fields must be skipped, not compared.
func (m Meta) HasQualityFields() bool {
	return m.Format != "" || m.BitrateKbps != nil || m.SampleRate != nil || m.DurationSec != nil
}
