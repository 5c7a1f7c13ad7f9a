package trump

import (
	"fmt"
	"strings"

	"shelfr/internal/quality"
)

// formatUpgradeToken marks reasons produced by a format-tier replacement.
// The conservative aggressiveness check and the archive tooling match on it.
const formatUpgradeToken = "Format upgrade"

// rule is one link in the decision chain. conclusive=false passes control
// to the next rule.
type rule struct {
	name     string
	evaluate func(existing, incoming quality.Meta, prefs Prefs) (Outcome, bool)
}

// Rules run in order; the first conclusive rule wins. Insertion and
// reordering never require touching neighboring rules.
var rules = []rule{
	{name: "identity-guard", evaluate: identityGuard},
	{name: "duration-sanity", evaluate: durationSanity},
	{name: "format-tier", evaluate: formatTier},
	{name: "bitrate", evaluate: bitrate},
	{name: "sample-rate", evaluate: sampleRate},
	{name: "tie-breakers", evaluate: tieBreakers},
}

// Decide compares an existing library copy against an incoming candidate.
// It is deterministic, including the reason text.
func Decide(existing, incoming quality.Meta, prefs Prefs) Outcome {
	outcome := Outcome{
		Decision: KeepExisting,
		Reason:   "no quality improvement detected",
		Rule:     "default",
	}
	for _, r := range rules {
		if result, conclusive := r.evaluate(existing, incoming, prefs); conclusive {
			result.Rule = r.name
			outcome = result
			break
		}
	}
	return applyAggressiveness(outcome, prefs)
}

// applyAggressiveness post-processes the chain outcome. Conservative mode
// only trusts replacements justified by a format-tier change; incremental
// bitrate or sample-rate wins are not worth churning the library for.
func applyAggressiveness(outcome Outcome, prefs Prefs) Outcome {
	if prefs.Aggressiveness != AggressivenessConservative {
		return outcome
	}
	if outcome.Decision != ReplaceWithNew {
		return outcome
	}
	if strings.Contains(outcome.Reason, formatUpgradeToken) {
		return outcome
	}
	return Outcome{
		Decision: KeepExisting,
		Reason:   fmt.Sprintf("conservative mode declined replacement: %s", outcome.Reason),
		Rule:     outcome.Rule,
	}
}

// identityGuard verifies the two copies describe the same work edition.
// Unknown fields never block; a known mismatch resolves to KeepBoth, never
// an error, because both copies are legitimate.
func identityGuard(existing, incoming quality.Meta, _ Prefs) (Outcome, bool) {
	if existing.ASIN != incoming.ASIN {
		return Outcome{
			Decision: KeepBoth,
			Reason:   fmt.Sprintf("identifier mismatch: existing %s vs incoming %s", existing.ASIN, incoming.ASIN),
		}, true
	}
	if existing.Language != "" && incoming.Language != "" && existing.Language != incoming.Language {
		return Outcome{
			Decision: KeepBoth,
			Reason:   fmt.Sprintf("language mismatch: existing %s vs incoming %s", existing.Language, incoming.Language),
		}, true
	}
	if existing.Abridged != nil && incoming.Abridged != nil && *existing.Abridged != *incoming.Abridged {
		return Outcome{
			Decision: KeepBoth,
			Reason: fmt.Sprintf("abridgement mismatch: existing abridged=%t vs incoming abridged=%t",
				*existing.Abridged, *incoming.Abridged),
		}, true
	}
	return Outcome{}, false
}

// durationSanity rejects suspicious length differences before any quality
// comparison. A ratio of exactly 1.0 never triggers either branch.
func durationSanity(existing, incoming quality.Meta, prefs Prefs) (Outcome, bool) {
	if existing.DurationSec == nil || incoming.DurationSec == nil || *existing.DurationSec <= 0 {
		return Outcome{}, false
	}
	ratio := float64(*incoming.DurationSec) / float64(*existing.DurationSec)
	if ratio < prefs.MinDurationRatio {
		return Outcome{
			Decision: RejectNew,
			Reason: fmt.Sprintf("incoming copy is shorter than existing (duration ratio %.2f < %.2f), possibly truncated",
				ratio, prefs.MinDurationRatio),
		}, true
	}
	if ratio > prefs.MaxDurationRatio {
		return Outcome{
			Decision: KeepBoth,
			Reason: fmt.Sprintf("incoming copy is longer than existing (duration ratio %.2f > %.2f), possibly different edition",
				ratio, prefs.MaxDurationRatio),
		}, true
	}
	return Outcome{}, false
}

// formatTier compares spoken-word format suitability. An unknown format on
// either side keeps the chain going instead of concluding.
func formatTier(existing, incoming quality.Meta, _ Prefs) (Outcome, bool) {
	existingTier := existing.FormatTier()
	incomingTier := incoming.FormatTier()
	if existingTier == 0 || incomingTier == 0 {
		return Outcome{}, false
	}
	if incomingTier > existingTier {
		return Outcome{
			Decision: ReplaceWithNew,
			Reason:   fmt.Sprintf("%s: %s -> %s", formatUpgradeToken, existing.Format, incoming.Format),
		}, true
	}
	if incomingTier < existingTier {
		return Outcome{
			Decision: RejectNew,
			Reason:   fmt.Sprintf("format downgrade: %s -> %s", existing.Format, incoming.Format),
		}, true
	}
	return Outcome{}, false
}

func bitrate(existing, incoming quality.Meta, prefs Prefs) (Outcome, bool) {
	if existing.BitrateKbps == nil || incoming.BitrateKbps == nil {
		return Outcome{}, false
	}
	delta := *incoming.BitrateKbps - *existing.BitrateKbps
	if delta >= prefs.MinBitrateIncreaseKbps {
		return Outcome{
			Decision: ReplaceWithNew,
			Reason: fmt.Sprintf("bitrate increase: %d kbps -> %d kbps (+%d)",
				*existing.BitrateKbps, *incoming.BitrateKbps, delta),
		}, true
	}
	if delta <= -prefs.MinBitrateIncreaseKbps {
		return Outcome{
			Decision: RejectNew,
			Reason: fmt.Sprintf("bitrate decrease: %d kbps -> %d kbps (%d)",
				*existing.BitrateKbps, *incoming.BitrateKbps, delta),
		}, true
	}
	return Outcome{}, false
}

// sampleRate only ever upgrades: a lower incoming sample rate alone is not
// disqualifying.
func sampleRate(existing, incoming quality.Meta, _ Prefs) (Outcome, bool) {
	if existing.SampleRate == nil || incoming.SampleRate == nil {
		return Outcome{}, false
	}
	if *incoming.SampleRate > *existing.SampleRate {
		return Outcome{
			Decision: ReplaceWithNew,
			Reason:   fmt.Sprintf("sample rate increase: %d Hz -> %d Hz", *existing.SampleRate, *incoming.SampleRate),
		}, true
	}
	return Outcome{}, false
}

// tieBreakers fire only when nothing else concluded. Both require the
// existing copy to measurably lack the feature; an unknown existing value
// is not evidence of a deficit.
func tieBreakers(existing, incoming quality.Meta, prefs Prefs) (Outcome, bool) {
	if prefs.PreferChapters &&
		incoming.HasChapters != nil && *incoming.HasChapters &&
		existing.HasChapters != nil && !*existing.HasChapters {
		return Outcome{
			Decision: ReplaceWithNew,
			Reason:   "incoming copy has chapter markers, existing copy does not",
		}, true
	}
	if prefs.PreferStereo &&
		incoming.Stereo != nil && *incoming.Stereo &&
		existing.Stereo != nil && !*existing.Stereo {
		return Outcome{
			Decision: ReplaceWithNew,
			Reason:   "incoming copy is stereo, existing copy is mono",
		}, true
	}
	return Outcome{}, false
}
