package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shelfr/internal/logging"
	"shelfr/internal/quality"
	"shelfr/internal/trump"
)

func intPtr(v int) *int { return &v }

func testMetas() (quality.Meta, quality.Meta) {
	existing := quality.Meta{
		ASIN:        "B00B5HZGUG",
		Format:      "mp3",
		BitrateKbps: intPtr(64),
		DurationSec: intPtr(39600),
		SourcePath:  "/library/Andy Weir/The Martian {B00B5HZGUG}",
	}
	incoming := quality.Meta{
		ASIN:        "B00B5HZGUG",
		Format:      "m4b",
		BitrateKbps: intPtr(128),
		DurationSec: intPtr(39580),
		SourcePath:  "/inbox/The Martian",
	}
	return existing, incoming
}

func TestArchiveMovesFolderAndWritesRecord(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "library", "old-version")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(source, "book.mp3"), []byte("old audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	archivist := New(filepath.Join(root, "archive"), logging.NewNop())
	existing, incoming := testMetas()
	outcome := trump.Outcome{
		Decision: trump.ReplaceWithNew,
		Reason:   "Bitrate upgrade: 64 kbps -> 128 kbps",
		Rule:     "bitrate",
	}

	dest, err := archivist.Archive(source, outcome, existing, incoming, trump.DefaultPrefs(), false)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if dest == "" {
		t.Fatal("expected a destination path")
	}

	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source folder still present after archive")
	}
	if _, err := os.Stat(filepath.Join(dest, "book.mp3")); err != nil {
		t.Fatalf("archived audio missing: %v", err)
	}

	record, err := ReadRecord(dest)
	if err != nil {
		t.Fatalf("ReadRecord() error = %v", err)
	}
	if record.SchemaVersion != 1 {
		t.Fatalf("SchemaVersion = %d, want 1", record.SchemaVersion)
	}
	if record.EventID == "" {
		t.Fatal("record must carry an event id")
	}
	if record.ArchivedAt.IsZero() || record.ArchivedAt.Location() != time.UTC {
		t.Fatalf("ArchivedAt = %v, want non-zero UTC", record.ArchivedAt)
	}
	if record.Decision != trump.ReplaceWithNew {
		t.Fatalf("Decision = %q, want %q", record.Decision, trump.ReplaceWithNew)
	}
	if record.Reason == "" || record.Rule != "bitrate" {
		t.Fatalf("record missing reason/rule: %+v", record)
	}
	if record.Existing.Format != "mp3" || record.Incoming.Format != "m4b" {
		t.Fatalf("record snapshots wrong: existing=%q incoming=%q",
			record.Existing.Format, record.Incoming.Format)
	}
}

func TestArchiveDestinationUnderASIN(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "old")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	archiveRoot := filepath.Join(root, "archive")
	archivist := New(archiveRoot, logging.NewNop())
	existing, incoming := testMetas()

	dest, err := archivist.Archive(source, trump.Outcome{Decision: trump.ReplaceWithNew}, existing, incoming, trump.DefaultPrefs(), false)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	rel, err := filepath.Rel(archiveRoot, dest)
	if err != nil {
		t.Fatalf("destination outside archive root: %v", err)
	}
	if filepath.Dir(rel) != "B00B5HZGUG" {
		t.Fatalf("destination = %q, want first segment to be the ASIN", rel)
	}
}

func TestArchiveCollisionSuffix(t *testing.T) {
	root := t.TempDir()
	archivist := New(filepath.Join(root, "archive"), logging.NewNop())
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	archivist.now = func() time.Time { return fixed }

	existing, incoming := testMetas()
	var dests []string
	for i := 0; i < 2; i++ {
		source := filepath.Join(root, "src")
		if err := os.MkdirAll(source, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		dest, err := archivist.Archive(source, trump.Outcome{Decision: trump.ReplaceWithNew}, existing, incoming, trump.DefaultPrefs(), false)
		if err != nil {
			t.Fatalf("Archive() #%d error = %v", i, err)
		}
		dests = append(dests, dest)
	}

	if dests[0] == dests[1] {
		t.Fatalf("same-timestamp archives collided at %q", dests[0])
	}
}

func TestArchiveDryRunMutatesNothing(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "old")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	archiveRoot := filepath.Join(root, "archive")
	archivist := New(archiveRoot, logging.NewNop())
	existing, incoming := testMetas()

	dest, err := archivist.Archive(source, trump.Outcome{Decision: trump.ReplaceWithNew}, existing, incoming, trump.DefaultPrefs(), true)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if dest != "" {
		t.Fatalf("dry run returned destination %q, want empty", dest)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("dry run moved the source: %v", err)
	}
	if _, err := os.Stat(archiveRoot); !os.IsNotExist(err) {
		t.Fatal("dry run created the archive root")
	}
}

func TestArchiveRequiresRoot(t *testing.T) {
	archivist := New("", logging.NewNop())
	existing, incoming := testMetas()
	if _, err := archivist.Archive(t.TempDir(), trump.Outcome{Decision: trump.ReplaceWithNew}, existing, incoming, trump.DefaultPrefs(), false); err == nil {
		t.Fatal("expected configuration error for empty archive root")
	}
}
