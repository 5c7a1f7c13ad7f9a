// Package archive moves replaced library folders into a crash-safe archive
// tree instead of deleting them. Each archived folder carries a JSON record
// describing why the replacement happened and what both versions looked
// like, so any trump decision can be audited or reversed by hand.
package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shelfr/internal/logging"
	"shelfr/internal/quality"
	"shelfr/internal/services"
	"shelfr/internal/trump"
)

// RecordName is the audit sidecar written inside every archived folder.
const RecordName = ".shelfr-archive.json"

// Record captures one replacement event. Unknown quality fields stay null
// in the JSON rather than being written as zeroes.
type Record struct {
	SchemaVersion int           `json:"schema_version"`
	EventID       string        `json:"event_id"`
	ArchivedAt    time.Time     `json:"archived_at"`
	Decision      trump.Decision `json:"decision"`
	Reason        string        `json:"reason"`
	Rule          string        `json:"rule"`
	Existing      quality.Meta  `json:"existing"`
	Incoming      quality.Meta  `json:"incoming"`
	Prefs         trump.Prefs   `json:"prefs"`
}

// Archivist relocates folders under a configured archive root.
type Archivist struct {
	root   string
	logger *slog.Logger
	now    func() time.Time
}

// New returns an Archivist rooted at root. The root may not yet exist; it
// is created on first archive.
func New(root string, logger *slog.Logger) *Archivist {
	return &Archivist{
		root:   root,
		logger: logging.NewComponentLogger(logger, "archive"),
		now:    time.Now,
	}
}

// Archive moves folder into the archive tree and writes the audit record
// inside the moved folder. The move is a single rename so a crash leaves
// the folder wholly in its old or new location, never split. Cross-device
// archive roots are rejected rather than degraded to a copy.
//
// Returns the archived path, or "" in dry-run mode where nothing is
// touched.
func (a *Archivist) Archive(folder string, outcome trump.Outcome, existing, incoming quality.Meta, prefs trump.Prefs, dryRun bool) (string, error) {
	if a.root == "" {
		return "", services.Wrap(services.ErrConfiguration, "archive", "archive",
			"archive root is not configured; set paths.archive_dir or disable trumping", nil)
	}

	asin := existing.ASIN
	if asin == "" {
		asin = "unidentified"
	}
	dest := a.destination(asin)

	if dryRun {
		a.logger.Info("dry run: would archive folder",
			slog.String("source", folder),
			slog.String("destination", dest))
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "archive", "archive", "create archive directory", err)
	}

	if err := os.Rename(folder, dest); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "archive", "archive",
			"move folder into archive (the archive root must be on the same filesystem as the library)", err)
	}

	record := Record{
		SchemaVersion: 1,
		EventID:       uuid.NewString(),
		ArchivedAt:    a.now().UTC(),
		Decision:      outcome.Decision,
		Reason:        outcome.Reason,
		Rule:          outcome.Rule,
		Existing:      existing,
		Incoming:      incoming,
		Prefs:         prefs,
	}
	if err := writeRecord(filepath.Join(dest, RecordName), record); err != nil {
		// The folder is safely archived; a missing record is a logged
		// defect, not a reason to re-expose the folder to deletion.
		a.logger.Error("failed to write archive record",
			slog.String("destination", dest),
			slog.String("error", err.Error()))
	}

	a.logger.Info("archived replaced folder",
		slog.String("source", folder),
		slog.String("destination", dest),
		slog.String(logging.FieldDecisionType, string(outcome.Decision)),
		slog.String("reason", outcome.Reason))
	return dest, nil
}

// destination yields <root>/<ASIN>/<timestamp>, suffixing on collision so
// repeated replacements of the same work never overwrite earlier archives.
func (a *Archivist) destination(asin string) string {
	stamp := a.now().UTC().Format("2006-01-02T15-04-05Z")
	base := filepath.Join(a.root, asin, stamp)
	dest := base
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		dest = fmt.Sprintf("%s-%d", base, n)
	}
}

func writeRecord(path string, record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadRecord loads the audit record from an archived folder.
func ReadRecord(folder string) (Record, error) {
	data, err := os.ReadFile(filepath.Join(folder, RecordName))
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("parse archive record: %w", err)
	}
	return record, nil
}
