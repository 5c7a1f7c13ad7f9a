package quality

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"shelfr/internal/asin"
	"shelfr/internal/logging"
	"shelfr/internal/media/ffprobe"
)

// Prober extracts quality snapshots by invoking ffprobe on candidate folders.
type Prober struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewProber constructs a prober around the given ffprobe binary. A zero
// timeout defaults to 30 seconds per invocation.
func NewProber(binary string, timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Prober{
		binary:  binary,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "quality"),
	}
}

// Snapshot builds the quality snapshot for a candidate folder.
//
// Zero audio files leaves every quality field unset. More than one audio
// file refuses quality extraction (mixed formats and playback order are
// ambiguous) and returns a minimal snapshot with format undefined, so a
// later comparison defaults safely to keeping the existing copy. Exactly
// one file is probed once; each field is parsed independently and a
// malformed field stays nil.
func (p *Prober) Snapshot(ctx context.Context, folder, id string) (Meta, error) {
	meta := Meta{ASIN: id, SourcePath: folder}

	files, err := AudioFiles(folder)
	if err != nil {
		return meta, err
	}
	switch len(files) {
	case 0:
		return meta, nil
	case 1:
	default:
		p.logger.Debug("multi-file folder, quality extraction skipped",
			logging.String("folder", folder),
			logging.Int("audio_files", len(files)))
		return meta, nil
	}

	file := files[0]
	meta.SourcePath = file
	meta.Format = strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, p.binary, file)
	if err != nil {
		// Tool missing or unreadable file: degrade to format-only metadata.
		p.logger.Warn("probe failed, falling back to format-only snapshot",
			logging.String("file", file),
			logging.Error(err))
		return meta, nil
	}

	if kbps, ok := measured(result.BitRate()); ok {
		value := int(math.Round(kbps / 1000))
		meta.BitrateKbps = &value
	}
	if rate, ok := measured(result.SampleRate()); ok {
		value := int(math.Round(rate))
		meta.SampleRate = &value
	}
	if seconds, ok := measured(result.DurationSeconds()); ok {
		value := int(math.Round(seconds))
		meta.DurationSec = &value
	}
	if channels := result.Channels(); channels > 0 {
		stereo := channels >= 2
		meta.Stereo = &stereo
	}
	chapters := result.ChapterCount() > 0
	meta.HasChapters = &chapters

	if lang, ok := result.Tag("language"); ok {
		meta.Language = normalizeLanguage(lang)
	}
	if narrator, ok := result.Tag("narrator"); ok {
		meta.Narrator = narrator
	} else if composer, ok := result.Tag("composer"); ok {
		// Audiobook taggers commonly store the narrator in the composer field.
		meta.Narrator = composer
	}
	if abridged, ok := result.Tag("abridged"); ok {
		value := parseBoolTag(abridged)
		meta.Abridged = &value
	}
	return meta, nil
}

// EmbeddedASIN probes a single audio file for an embedded identifier tag.
func (p *Prober) EmbeddedASIN(ctx context.Context, file string) (string, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, p.binary, file)
	if err != nil {
		p.logger.Debug("tag probe failed", logging.String("file", file), logging.Error(err))
		return "", false
	}
	for _, key := range []string{"asin", "audible_asin", "cdek"} {
		if value, ok := result.Tag(key); ok {
			normalized := asin.Normalize(value)
			if asin.Valid(normalized) {
				return normalized, true
			}
		}
	}
	return "", false
}

// measured filters out the "missing" (0) and "malformed" (NaN) sentinels the
// ffprobe accessors produce.
func measured(value float64) (float64, bool) {
	if value <= 0 || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

func normalizeLanguage(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func parseBoolTag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
