package resolver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"shelfr/internal/asin"
	"shelfr/internal/logging"
	"shelfr/internal/quality"
	"shelfr/internal/services/audible"
)

// Source tags where a resolution came from.
type Source string

const (
	SourceFolder   Source = "folder"
	SourceFilename Source = "filename"
	SourceSidecar  Source = "sidecar"
	SourceProbe    Source = "probe"
	SourceExternal Source = "external-search"
	SourceNone     Source = "none"
)

// Resolution is the outcome of the identifier cascade. Confidence is only
// meaningful for SourceExternal; every other source is treated as exact.
type Resolution struct {
	ASIN       string
	Source     Source
	Confidence float64
}

// Resolved reports whether the cascade produced an identifier.
func (r Resolution) Resolved() bool {
	return r.Source != SourceNone && r.ASIN != ""
}

// TagProber extracts an embedded identifier tag from a single audio file.
type TagProber interface {
	EmbeddedASIN(ctx context.Context, file string) (string, bool)
}

// Searcher queries an external catalog for identifier candidates.
type Searcher interface {
	Search(ctx context.Context, title, author string) ([]audible.Result, error)
}

// Resolver runs the multi-source identifier cascade.
type Resolver struct {
	prober TagProber
	search Searcher
	logger *slog.Logger
}

// New constructs a resolver. search may be nil when external search is not
// configured; prober may be nil when no probe binary is available.
func New(prober TagProber, search Searcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		prober: prober,
		search: search,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// authorTitlePattern matches the "Author - Title" folder naming shape used
// for search hints when no sidecar is present.
var authorTitlePattern = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

// Resolve walks the source cascade for one candidate folder. Cost rises
// monotonically down the cascade, so evaluation is sequential with early
// exit and no retries. An exhausted cascade returns SourceNone, never an
// error: a missing identifier is a routing outcome, not a failure.
func (r *Resolver) Resolve(ctx context.Context, folder, parsedHint string, allowSearch bool, threshold float64) (Resolution, error) {
	logger := logging.WithContext(ctx, r.logger)

	guess := r.folderGuess(folder, parsedHint)

	// The sidecar is consulted even when the folder already produced a
	// guess: its identifier is authoritative, and a conflicting guess is
	// logged rather than silently dropped.
	sidecar, err := LoadSidecar(folder)
	if err != nil {
		logger.Warn("sidecar unreadable, continuing cascade", logging.Error(err))
	}
	if sidecar != nil {
		if id := asin.Normalize(sidecar.ASIN); asin.Valid(id) {
			if guess.Resolved() && guess.ASIN != id {
				logger.Warn("sidecar identifier overrides folder guess",
					logging.String("folder_guess", guess.ASIN),
					logging.String("sidecar_asin", id),
					logging.String("guess_source", string(guess.Source)))
			}
			return Resolution{ASIN: id, Source: SourceSidecar}, nil
		}
	}
	if guess.Resolved() {
		return guess, nil
	}

	if res, ok := r.probeResolution(ctx, folder); ok {
		return res, nil
	}

	if allowSearch && r.search != nil {
		if res, ok := r.searchResolution(ctx, folder, sidecar, threshold); ok {
			return res, nil
		}
	}

	logger.Debug("identifier cascade exhausted", logging.String("folder", folder))
	return Resolution{Source: SourceNone}, nil
}

// folderGuess covers cascade steps 1-3: the pre-parsed hint, the folder
// name, and contained file names.
func (r *Resolver) folderGuess(folder, parsedHint string) Resolution {
	if id := asin.Normalize(parsedHint); asin.Valid(id) {
		return Resolution{ASIN: id, Source: SourceFolder}
	}
	if id, ok := asin.Extract(filepath.Base(folder)); ok {
		return Resolution{ASIN: id, Source: SourceFolder}
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return Resolution{Source: SourceNone}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := asin.Extract(entry.Name()); ok {
			return Resolution{ASIN: id, Source: SourceFilename}
		}
	}
	return Resolution{Source: SourceNone}
}

// probeResolution checks the primary audio file for an embedded tag.
// Multi-file folders skip identifier probing: there is no defined primary
// file to trust, and per-file tags routinely disagree.
func (r *Resolver) probeResolution(ctx context.Context, folder string) (Resolution, bool) {
	if r.prober == nil {
		return Resolution{}, false
	}
	files, err := quality.AudioFiles(folder)
	if err != nil || len(files) != 1 {
		return Resolution{}, false
	}
	if id, ok := r.prober.EmbeddedASIN(ctx, files[0]); ok {
		return Resolution{ASIN: id, Source: SourceProbe}, true
	}
	return Resolution{}, false
}

func (r *Resolver) searchResolution(ctx context.Context, folder string, sidecar *Sidecar, threshold float64) (Resolution, bool) {
	logger := logging.WithContext(ctx, r.logger)

	title, author := searchHints(folder, sidecar)
	if title == "" {
		return Resolution{}, false
	}
	results, err := r.search.Search(ctx, title, author)
	if err != nil {
		logger.Warn("external search failed", logging.Error(err))
		return Resolution{}, false
	}
	if len(results) == 0 {
		return Resolution{}, false
	}
	best := results[0]
	if best.Confidence < threshold {
		logger.Info("best search candidate below confidence threshold",
			logging.String("candidate_asin", best.ASIN),
			logging.Float64("confidence", best.Confidence),
			logging.Float64("threshold", threshold))
		return Resolution{}, false
	}
	return Resolution{ASIN: best.ASIN, Source: SourceExternal, Confidence: best.Confidence}, true
}

// searchHints derives the title/author query from the sidecar when present,
// otherwise from an "Author - Title" folder name shape, otherwise the bare
// folder name as title.
func searchHints(folder string, sidecar *Sidecar) (title, author string) {
	if sidecar != nil && sidecar.Title != "" {
		return sidecar.Title, sidecar.Author()
	}
	name := strings.TrimSpace(filepath.Base(folder))
	if match := authorTitlePattern.FindStringSubmatch(name); match != nil {
		return strings.TrimSpace(match[2]), strings.TrimSpace(match[1])
	}
	return name, ""
}
