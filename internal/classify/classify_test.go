package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func makeFolder(t *testing.T, name string, audioFiles int) string {
	t.Helper()
	folder := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for i := 0; i < audioFiles; i++ {
		path := filepath.Join(folder, "part"+string(rune('a'+i))+".mp3")
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return folder
}

func TestClassifyHomebrewNeedsShapeAndHint(t *testing.T) {
	hints := []string{"Grandpa Joe", "Andy Weir"}

	folder := makeFolder(t, "Grandpa Joe - War Stories", 1)
	ctx, err := Classify(folder, hints)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.ContentType != Homebrew {
		t.Fatalf("content type = %s, want homebrew", ctx.ContentType)
	}
	if ctx.Author != "Grandpa Joe" || ctx.Title != "War Stories" {
		t.Fatalf("parsed %q / %q", ctx.Author, ctx.Title)
	}

	// Right shape, unknown author: likely-missing.
	folder = makeFolder(t, "Unknown Person - Some Story", 1)
	ctx, err = Classify(folder, hints)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.ContentType != LikelyMissing {
		t.Fatalf("unknown author classified as %s", ctx.ContentType)
	}

	// Known author, wrong shape: likely-missing.
	folder = makeFolder(t, "War Stories by Grandpa Joe", 1)
	ctx, err = Classify(folder, hints)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.ContentType != LikelyMissing {
		t.Fatalf("wrong shape classified as %s", ctx.ContentType)
	}
}

func TestClassifyHintMatchingTolerantOfCase(t *testing.T) {
	folder := makeFolder(t, "andy weir - Draft Chapters", 1)
	ctx, err := Classify(folder, []string{"Andy Weir"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.ContentType != Homebrew {
		t.Fatalf("case difference broke hint match: %s", ctx.ContentType)
	}
	if ctx.Author != "Andy Weir" {
		t.Fatalf("author should take the hint's spelling, got %q", ctx.Author)
	}
}

func TestClassifyCarriesOriginalName(t *testing.T) {
	name := "Some Book (2003 remaster) [v2]"
	folder := makeFolder(t, name, 3)
	ctx, err := Classify(folder, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.OriginalName != name {
		t.Fatalf("original name = %q, want %q", ctx.OriginalName, name)
	}
	if !ctx.MultiFile {
		t.Fatal("expected multi-file")
	}
}

func TestClassifySingleFileAxis(t *testing.T) {
	folder := makeFolder(t, "Solo", 1)
	ctx, err := Classify(folder, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ctx.MultiFile {
		t.Fatal("single audio file flagged as multi")
	}
}
