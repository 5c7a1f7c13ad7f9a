package libindex

import (
	"os"
	"path/filepath"
	"testing"
)

func makeLibrary(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return root
}

func TestBuildIndexesAuthorBookLayout(t *testing.T) {
	root := makeLibrary(t,
		"Andy Weir/The Martian {ASIN.B00B5HZGUG}",
		"Andy Weir/Project Hail Mary {ASIN.B08GB58KD5}",
		"Yuval Noah Harari/Sapiens {ASIN.B017V4IM1G}",
	)
	index, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if index.Len() != 3 {
		t.Fatalf("entries = %d, want 3", index.Len())
	}
	entry, ok := index.Lookup("B00B5HZGUG")
	if !ok {
		t.Fatal("lookup failed")
	}
	if entry.Author != "Andy Weir" {
		t.Fatalf("author = %q", entry.Author)
	}
	if entry.Title != "The Martian" {
		t.Fatalf("title = %q", entry.Title)
	}
	if entry.Path != filepath.Join(root, "Andy Weir", "The Martian {ASIN.B00B5HZGUG}") {
		t.Fatalf("path = %q", entry.Path)
	}

	authors := index.Authors()
	if len(authors) != 2 || authors[0] != "Andy Weir" || authors[1] != "Yuval Noah Harari" {
		t.Fatalf("authors = %v", authors)
	}
}

func TestBuildFirstSeenWins(t *testing.T) {
	root := makeLibrary(t,
		"Andy Weir/The Martian {ASIN.B00B5HZGUG}",
		"Zeta Shelf/The Martian Again {ASIN.B00B5HZGUG}",
	)
	index, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if index.Len() != 1 {
		t.Fatalf("entries = %d, want 1", index.Len())
	}
	entry, _ := index.Lookup("B00B5HZGUG")
	if entry.Author != "Andy Weir" {
		t.Fatalf("first-seen entry lost: %+v", entry)
	}
}

func TestBuildRootLevelBookFolders(t *testing.T) {
	root := makeLibrary(t, "Sapiens {ASIN.B017V4IM1G}")
	index, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	entry, ok := index.Lookup("B017V4IM1G")
	if !ok || entry.Author != "" {
		t.Fatalf("root-level entry = %+v ok=%v", entry, ok)
	}
	if len(index.Authors()) != 0 {
		t.Fatalf("book folder counted as author: %v", index.Authors())
	}
}

func TestBuildMissingRootYieldsEmptyIndex(t *testing.T) {
	index, err := Build(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if index.Len() != 0 {
		t.Fatalf("entries = %d", index.Len())
	}
}
