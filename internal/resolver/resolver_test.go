package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shelfr/internal/services/audible"
)

type stubProber struct {
	id     string
	ok     bool
	called int
}

func (s *stubProber) EmbeddedASIN(_ context.Context, _ string) (string, bool) {
	s.called++
	return s.id, s.ok
}

type stubSearcher struct {
	results []audible.Result
	err     error
	called  int
}

func (s *stubSearcher) Search(_ context.Context, _, _ string) ([]audible.Result, error) {
	s.called++
	return s.results, s.err
}

func makeFolder(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	folder := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(folder, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return folder
}

func TestResolveParsedHintWinsImmediately(t *testing.T) {
	folder := makeFolder(t, "Some Book", nil)
	r := New(nil, nil, nil)

	res, err := r.Resolve(context.Background(), folder, "b002v5bp2c", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B002V5BP2C" || res.Source != SourceFolder {
		t.Fatalf("got %+v", res)
	}
}

func TestResolveFolderName(t *testing.T) {
	folder := makeFolder(t, "The Martian {ASIN.B00B5HZGUG}", nil)
	r := New(nil, nil, nil)

	res, err := r.Resolve(context.Background(), folder, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B00B5HZGUG" || res.Source != SourceFolder {
		t.Fatalf("got %+v", res)
	}
}

func TestResolveFileName(t *testing.T) {
	folder := makeFolder(t, "The Martian", map[string]string{
		"The Martian [B00B5HZGUG].m4b": "audio",
	})
	r := New(nil, nil, nil)

	res, err := r.Resolve(context.Background(), folder, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B00B5HZGUG" || res.Source != SourceFilename {
		t.Fatalf("got %+v", res)
	}
}

func TestResolveSidecarOverridesFolderGuess(t *testing.T) {
	folder := makeFolder(t, "The Martian {ASIN.B099999ZZZ}", map[string]string{
		SidecarName: `{"asin": "B00B5HZGUG", "title": "The Martian"}`,
	})
	r := New(nil, nil, nil)

	res, err := r.Resolve(context.Background(), folder, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B00B5HZGUG" {
		t.Fatalf("sidecar must win over folder guess, got %+v", res)
	}
	if res.Source != SourceSidecar {
		t.Fatalf("provenance = %s, want sidecar", res.Source)
	}
}

func TestResolveMalformedSidecarContinuesCascade(t *testing.T) {
	folder := makeFolder(t, "The Martian {ASIN.B00B5HZGUG}", map[string]string{
		SidecarName: "{not json",
	})
	r := New(nil, nil, nil)

	res, err := r.Resolve(context.Background(), folder, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B00B5HZGUG" || res.Source != SourceFolder {
		t.Fatalf("got %+v", res)
	}
}

func TestResolveProbeSingleFileOnly(t *testing.T) {
	prober := &stubProber{id: "B017V4IM1G", ok: true}
	r := New(prober, nil, nil)

	single := makeFolder(t, "Sapiens", map[string]string{"sapiens.m4b": "audio"})
	res, err := r.Resolve(context.Background(), single, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B017V4IM1G" || res.Source != SourceProbe {
		t.Fatalf("got %+v", res)
	}

	multi := makeFolder(t, "Sapiens Parts", map[string]string{
		"part1.mp3": "a", "part2.mp3": "b",
	})
	prober.called = 0
	res, err = r.Resolve(context.Background(), multi, "", false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prober.called != 0 {
		t.Fatal("multi-file folders must skip identifier probing")
	}
	if res.Resolved() {
		t.Fatalf("expected unresolved, got %+v", res)
	}
}

func TestResolveExternalSearchThreshold(t *testing.T) {
	search := &stubSearcher{results: []audible.Result{
		{ASIN: "B08GB58KD5", Title: "Project Hail Mary", Confidence: 0.95},
	}}
	r := New(nil, search, nil)
	folder := makeFolder(t, "Andy Weir - Project Hail Mary", nil)

	res, err := r.Resolve(context.Background(), folder, "", true, 0.8)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ASIN != "B08GB58KD5" || res.Source != SourceExternal || res.Confidence != 0.95 {
		t.Fatalf("got %+v", res)
	}

	// Below threshold: unresolved, never a partial acceptance.
	search.results[0].Confidence = 0.5
	res, err = r.Resolve(context.Background(), folder, "", true, 0.8)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Resolved() {
		t.Fatalf("low-confidence candidate accepted: %+v", res)
	}
}

func TestResolveSearchRequiresOptIn(t *testing.T) {
	search := &stubSearcher{results: []audible.Result{
		{ASIN: "B08GB58KD5", Confidence: 1.0},
	}}
	r := New(nil, search, nil)
	folder := makeFolder(t, "Andy Weir - Project Hail Mary", nil)

	res, err := r.Resolve(context.Background(), folder, "", false, 0.8)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if search.called != 0 {
		t.Fatal("search consulted without opt-in")
	}
	if res.Source != SourceNone {
		t.Fatalf("got %+v", res)
	}
}

func TestSearchHints(t *testing.T) {
	title, author := searchHints("/inbox/Andy Weir - Project Hail Mary", nil)
	if author != "Andy Weir" || title != "Project Hail Mary" {
		t.Fatalf("hints = %q / %q", author, title)
	}

	sidecar := &Sidecar{Title: "The Martian", Authors: []string{"Andy Weir"}}
	title, author = searchHints("/inbox/whatever", sidecar)
	if title != "The Martian" || author != "Andy Weir" {
		t.Fatalf("sidecar hints = %q / %q", title, author)
	}

	title, author = searchHints("/inbox/JustATitle", nil)
	if title != "JustATitle" || author != "" {
		t.Fatalf("bare hints = %q / %q", title, author)
	}
}
