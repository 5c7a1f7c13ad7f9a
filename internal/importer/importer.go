// Package importer orchestrates the import pipeline: resolve an identifier,
// detect duplicates against the library index, decide replacements, and
// place or route every candidate. Failures are candidate-scoped; a run
// always finishes and reports per-candidate outcomes.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"shelfr/internal/archive"
	"shelfr/internal/classify"
	"shelfr/internal/config"
	"shelfr/internal/fileutil"
	"shelfr/internal/history"
	"shelfr/internal/libindex"
	"shelfr/internal/logging"
	"shelfr/internal/naming"
	"shelfr/internal/quality"
	"shelfr/internal/resolver"
	"shelfr/internal/services"
	"shelfr/internal/trump"
)

// Recorder persists per-candidate outcomes. Nil disables recording.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Config    *config.Config
	Resolver  *resolver.Resolver
	Prober    *quality.Prober
	Namer     naming.Namer
	Archivist *archive.Archivist
	History   Recorder
	Logger    *slog.Logger
}

// Importer runs import candidates through the pipeline sequentially.
type Importer struct {
	cfg       *config.Config
	resolver  *resolver.Resolver
	prober    *quality.Prober
	namer     naming.Namer
	archivist *archive.Archivist
	history   Recorder
	logger    *slog.Logger
}

// New constructs an Importer from its collaborators.
func New(opts Options) *Importer {
	namer := opts.Namer
	if namer == nil {
		namer = naming.NewDefault()
	}
	return &Importer{
		cfg:       opts.Config,
		resolver:  opts.Resolver,
		prober:    opts.Prober,
		namer:     namer,
		archivist: opts.Archivist,
		history:   opts.History,
		logger:    logging.NewComponentLogger(opts.Logger, "importer"),
	}
}

// Run processes candidate folders one at a time. Dry-run executes the full
// resolution and decision logic with zero filesystem mutation; decisions
// and reasons match what a real run would produce.
func (i *Importer) Run(ctx context.Context, runID string, folders []string, dryRun bool) Summary {
	ctx = services.WithRunID(ctx, runID)
	summary := Summary{RunID: runID, DryRun: dryRun}

	index, err := libindex.Build(i.cfg.Paths.LibraryDir, i.logger)
	if err != nil {
		// Without an index every candidate would be treated as new; fail
		// the run's candidates instead of risking duplicate placement.
		for _, folder := range folders {
			summary.Results = append(summary.Results, Result{
				Source: folder,
				Status: StatusFailed,
				Err:    services.Wrap(services.ErrExternalTool, "importer", "run", "build library index", err),
			})
		}
		return summary
	}

	for _, folder := range folders {
		candidateCtx := services.WithCandidate(ctx, filepath.Base(folder))
		result := i.processCandidate(candidateCtx, index, folder, dryRun)
		result.Source = folder
		summary.Results = append(summary.Results, result)
		i.record(candidateCtx, runID, result, dryRun)
	}
	return summary
}

func (i *Importer) processCandidate(ctx context.Context, index *libindex.Index, folder string, dryRun bool) Result {
	logger := logging.WithContext(ctx, i.logger)

	resolution, err := i.resolver.Resolve(ctx, folder, "", i.cfg.Search.Enabled, i.cfg.Search.ConfidenceThreshold)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}

	if !resolution.Resolved() {
		return i.routeUnresolved(ctx, index, folder, dryRun)
	}

	result := Result{ASIN: resolution.ASIN, Provenance: resolution.Source}
	logger.Info("identifier resolved",
		logging.String(logging.FieldASIN, resolution.ASIN),
		logging.String("source", string(resolution.Source)))

	incoming, err := i.prober.Snapshot(ctx, folder, resolution.ASIN)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	i.enrichFromSidecar(folder, &incoming)

	entry, exists := index.Lookup(resolution.ASIN)
	if !exists {
		return i.placeNew(ctx, folder, resolution.ASIN, incoming, result, dryRun)
	}
	return i.handleDuplicate(ctx, folder, entry, incoming, result, dryRun)
}

// routeUnresolved classifies a candidate without an identifier: homebrew
// goes to the author area, everything else is quarantined under its
// original, unmodified folder name.
func (i *Importer) routeUnresolved(ctx context.Context, index *libindex.Index, folder string, dryRun bool) Result {
	logger := logging.WithContext(ctx, i.logger)

	routing, err := classify.Classify(folder, index.Authors())
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}

	if routing.ContentType == classify.Homebrew {
		target := filepath.Join(i.cfg.Paths.LibraryDir, i.namer.FolderName(routing.Author, routing.Title, ""))
		if err := i.place(folder, target, dryRun); err != nil {
			return Result{Status: StatusFailed, Err: err}
		}
		logger.Info("homebrew content placed",
			logging.String("author", routing.Author),
			logging.String("target", target))
		return Result{Status: StatusPlaced, Reason: "homebrew content, no identifier expected", Target: target}
	}

	target := filepath.Join(i.cfg.Paths.QuarantineDir, routing.OriginalName)
	if err := i.place(folder, target, dryRun); err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	logger.Info("candidate quarantined for review",
		logging.String("target", target),
		logging.Bool("multi_file", routing.MultiFile))
	return Result{Status: StatusQuarantined, Reason: "no resolvable identifier", Target: target}
}

func (i *Importer) placeNew(ctx context.Context, folder, id string, incoming quality.Meta, result Result, dryRun bool) Result {
	author, title := i.displayIdentity(folder, incoming)
	target := filepath.Join(i.cfg.Paths.LibraryDir, i.namer.FolderName(author, title, id))

	if _, err := i.renamePass(ctx, folder, id, title, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	if err := i.place(folder, target, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Status = StatusPlaced
	result.Reason = "no existing copy"
	result.Target = target
	return result
}

func (i *Importer) handleDuplicate(ctx context.Context, folder string, entry libindex.Entry, incoming quality.Meta, result Result, dryRun bool) Result {
	logger := logging.WithContext(ctx, i.logger)

	if !i.cfg.Trump.Enabled {
		result.Status = StatusSkipped
		result.Reason = "duplicate and trumping is disabled"
		return result
	}

	incomingMulti, err := i.isMultiFile(folder)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	existingMulti, err := i.isMultiFile(entry.Path)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	if incomingMulti || existingMulti {
		return i.applyMultiFilePolicy(ctx, folder, entry, incoming, result, dryRun)
	}

	// A duplicate without any measurable quality (typically a folder with
	// zero audio files) is skipped, never compared.
	if !incoming.HasQualityFields() {
		logger.Info("duplicate skipped, incoming copy has nothing to compare",
			logging.String(logging.FieldASIN, entry.ASIN))
		result.Status = StatusSkipped
		result.Reason = "no audio to compare"
		return result
	}

	existing, err := i.prober.Snapshot(ctx, entry.Path, entry.ASIN)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	prefs := i.cfg.TrumpPrefs()
	outcome := trump.Decide(existing, incoming, prefs)
	result.Decision = string(outcome.Decision)
	result.Reason = outcome.Reason
	logger.Info("duplicate decision",
		logging.Args(logging.DecisionAttrs("trump", string(outcome.Decision), outcome.Reason)...)...)

	switch outcome.Decision {
	case trump.KeepExisting, trump.RejectNew:
		result.Status = StatusSkipped
		return result
	case trump.KeepBoth:
		return i.placeAlongside(ctx, folder, entry, incoming, result, dryRun)
	case trump.ReplaceWithNew:
		return i.replace(ctx, folder, entry, outcome, existing, incoming, prefs, result, dryRun)
	default:
		result.Status = StatusFailed
		result.Err = services.Wrap(services.ErrValidation, "importer", "decide",
			fmt.Sprintf("unknown decision %q", outcome.Decision), nil)
		return result
	}
}

// applyMultiFilePolicy handles duplicates that involve a multi-file layout
// on either side. Quality comparison is undefined for them, so policy
// decides: skip (default), warn (skip loudly), or overwrite (archive the
// existing copy first, then place).
func (i *Importer) applyMultiFilePolicy(ctx context.Context, folder string, entry libindex.Entry, incoming quality.Meta, result Result, dryRun bool) Result {
	logger := logging.WithContext(ctx, i.logger)

	switch i.cfg.Trump.MultiFilePolicy {
	case "overwrite":
		outcome := trump.Outcome{
			Decision: trump.ReplaceWithNew,
			Reason:   "multi-file duplicate, overwrite policy",
			Rule:     "multi-file-policy",
		}
		existing := quality.Meta{ASIN: entry.ASIN, SourcePath: entry.Path}
		return i.replace(ctx, folder, entry, outcome, existing, incoming, i.cfg.TrumpPrefs(), result, dryRun)
	case "warn":
		logger.Warn("multi-file duplicate skipped",
			logging.String(logging.FieldASIN, entry.ASIN),
			logging.String("existing", entry.Path))
		fallthrough
	default:
		result.Status = StatusSkipped
		result.Reason = "multi-file duplicate, quality comparison undefined"
		return result
	}
}

func (i *Importer) placeAlongside(ctx context.Context, folder string, entry libindex.Entry, incoming quality.Meta, result Result, dryRun bool) Result {
	author, title := i.displayIdentity(folder, incoming)
	if entry.Author != "" {
		author = entry.Author
	}
	base := filepath.Join(i.cfg.Paths.LibraryDir, i.namer.FolderName(author, title, entry.ASIN))
	target := editionTarget(base, entry.Path)

	if _, err := i.renamePass(ctx, folder, entry.ASIN, title, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	if err := i.place(folder, target, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Status = StatusKeptBoth
	result.Target = target
	return result
}

// replace archives the existing copy and only then places the incoming
// one. The order is load-bearing for crash safety: a crash between the two
// steps leaves the archived copy intact and the incoming data still at its
// source.
func (i *Importer) replace(ctx context.Context, folder string, entry libindex.Entry, outcome trump.Outcome, existing, incoming quality.Meta, prefs trump.Prefs, result Result, dryRun bool) Result {
	if _, err := i.archivist.Archive(entry.Path, outcome, existing, incoming, prefs, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	author, title := i.displayIdentity(folder, incoming)
	if entry.Author != "" {
		author = entry.Author
	}
	target := filepath.Join(i.cfg.Paths.LibraryDir, i.namer.FolderName(author, title, entry.ASIN))

	if _, err := i.renamePass(ctx, folder, entry.ASIN, title, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	if err := i.place(folder, target, dryRun); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Status = StatusReplaced
	result.Target = target
	return result
}

// place relocates a candidate folder. Unlike archiving, placement may
// degrade to a verified copy+remove across filesystems: the incoming data
// still exists at the source until the copy verifies.
func (i *Importer) place(folder, target string, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := fileutil.MoveDir(folder, target); err != nil {
		return services.Wrap(services.ErrExternalTool, "importer", "place", "move folder into library", err)
	}
	return nil
}

func (i *Importer) isMultiFile(folder string) (bool, error) {
	files, err := quality.AudioFiles(folder)
	if err != nil {
		return false, services.Wrap(services.ErrExternalTool, "importer", "scan", "list audio files", err)
	}
	return len(files) > 1, nil
}

// displayIdentity derives the author/title used for naming: sidecar first,
// then an "Author - Title" folder shape, then the bare folder name.
func (i *Importer) displayIdentity(folder string, incoming quality.Meta) (author, title string) {
	if sidecar, err := resolver.LoadSidecar(folder); err == nil && sidecar != nil {
		if sidecar.Title != "" {
			return sidecar.Author(), sidecar.Title
		}
	}
	name := stripIdentifierTag(filepath.Base(folder))
	if match := authorTitlePattern.FindStringSubmatch(name); match != nil {
		return strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
	}
	return "", name
}

func (i *Importer) enrichFromSidecar(folder string, meta *quality.Meta) {
	sidecar, err := resolver.LoadSidecar(folder)
	if err != nil || sidecar == nil {
		return
	}
	if meta.Language == "" && sidecar.Language != "" {
		meta.Language = strings.ToLower(strings.TrimSpace(sidecar.Language))
	}
	if meta.Abridged == nil && sidecar.Abridged != nil {
		meta.Abridged = sidecar.Abridged
	}
	if meta.Narrator == "" && sidecar.Narrator != "" {
		meta.Narrator = sidecar.Narrator
	}
}

func (i *Importer) record(ctx context.Context, runID string, result Result, dryRun bool) {
	if i.history == nil {
		return
	}
	entry := history.Entry{
		RunID:      runID,
		SourcePath: result.Source,
		ASIN:       result.ASIN,
		Decision:   string(result.Status),
		Reason:     result.Reason,
		TargetPath: result.Target,
		DryRun:     dryRun,
	}
	if result.Decision != "" {
		entry.Decision = result.Decision
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}
	if err := i.history.Record(ctx, entry); err != nil {
		logging.WithContext(ctx, i.logger).Warn("history record failed", logging.Error(err))
	}
}

var authorTitlePattern = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

var identifierTagPattern = regexp.MustCompile(`\s*[{\[]\s*(?:ASIN[.:]\s*)?[A-Z0-9]{10}\s*[}\]]`)

func stripIdentifierTag(name string) string {
	return strings.TrimSpace(identifierTagPattern.ReplaceAllString(name, ""))
}

// editionTarget yields a placement path that never collides with the
// existing copy or earlier alternates.
func editionTarget(base, existingPath string) string {
	candidate := base
	for n := 2; candidate == existingPath || pathExists(candidate); n++ {
		candidate = fmt.Sprintf("%s (edition %d)", base, n)
	}
	return candidate
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
