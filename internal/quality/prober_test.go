package quality

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const probeReport = `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio", "sample_rate": "44100", "channels": 2, "tags": {"language": "eng"}}
  ],
  "chapters": [
    {"id": 0, "start_time": "0.000000", "end_time": "1800.000000", "tags": {"title": "Chapter 1"}},
    {"id": 1, "start_time": "1800.000000", "end_time": "3600.000000", "tags": {"title": "Chapter 2"}}
  ],
  "format": {
    "filename": "book.m4b",
    "nb_streams": 1,
    "duration": "35999.600000",
    "bit_rate": "127500",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "tags": {"ASIN": "B00B5HZGUG", "composer": "Ray Porter"}
  }
}`

// stubFFprobe writes an executable that emits the canned report regardless
// of arguments and returns its path.
func stubFFprobe(t *testing.T, report string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ffprobe")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", report)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub ffprobe: %v", err)
	}
	return path
}

func bookFolder(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestSnapshotSingleFile(t *testing.T) {
	folder := bookFolder(t, "book.m4b", "cover.jpg")
	prober := NewProber(stubFFprobe(t, probeReport), 0, nil)

	meta, err := prober.Snapshot(context.Background(), folder, "B00B5HZGUG")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if meta.Format != "m4b" {
		t.Fatalf("format = %q", meta.Format)
	}
	if meta.BitrateKbps == nil || *meta.BitrateKbps != 128 {
		t.Fatalf("bitrate = %v, want 128 (rounded from 127500 bps)", meta.BitrateKbps)
	}
	if meta.SampleRate == nil || *meta.SampleRate != 44100 {
		t.Fatalf("sample rate = %v", meta.SampleRate)
	}
	if meta.DurationSec == nil || *meta.DurationSec != 36000 {
		t.Fatalf("duration = %v, want 36000 (rounded)", meta.DurationSec)
	}
	if meta.HasChapters == nil || !*meta.HasChapters {
		t.Fatalf("has chapters = %v", meta.HasChapters)
	}
	if meta.Stereo == nil || !*meta.Stereo {
		t.Fatalf("stereo = %v", meta.Stereo)
	}
	if meta.Language != "eng" {
		t.Fatalf("language = %q", meta.Language)
	}
	if meta.Narrator != "Ray Porter" {
		t.Fatalf("narrator = %q (composer fallback expected)", meta.Narrator)
	}
	if meta.Abridged != nil {
		t.Fatalf("abridged should stay unknown, got %v", *meta.Abridged)
	}
}

func TestSnapshotZeroAudioFiles(t *testing.T) {
	folder := bookFolder(t, "cover.jpg", "metadata.json")
	prober := NewProber("ffprobe-not-invoked", 0, nil)

	meta, err := prober.Snapshot(context.Background(), folder, "B00B5HZGUG")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if meta.HasQualityFields() {
		t.Fatalf("expected no quality fields, got %+v", meta)
	}
	if meta.ASIN != "B00B5HZGUG" {
		t.Fatalf("asin = %q", meta.ASIN)
	}
}

func TestSnapshotMultiFileRefusesQualityExtraction(t *testing.T) {
	folder := bookFolder(t, "part1.mp3", "part2.mp3", "part3.mp3")
	prober := NewProber("ffprobe-not-invoked", 0, nil)

	meta, err := prober.Snapshot(context.Background(), folder, "B00B5HZGUG")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if meta.Format != "" {
		t.Fatalf("multi-file snapshot must leave format undefined, got %q", meta.Format)
	}
	if meta.BitrateKbps != nil || meta.DurationSec != nil {
		t.Fatal("multi-file snapshot must not carry measurements")
	}
}

func TestSnapshotProbeFailureDegradesToFormatOnly(t *testing.T) {
	folder := bookFolder(t, "book.mp3")
	prober := NewProber(filepath.Join(t.TempDir(), "missing-ffprobe"), 0, nil)

	meta, err := prober.Snapshot(context.Background(), folder, "")
	if err != nil {
		t.Fatalf("probe failure must not abort the candidate: %v", err)
	}
	if meta.Format != "mp3" {
		t.Fatalf("format = %q", meta.Format)
	}
	if meta.BitrateKbps != nil || meta.SampleRate != nil || meta.DurationSec != nil {
		t.Fatal("failed probe must leave measurements unset, not zero")
	}
}

func TestSnapshotMalformedFieldsStayUnset(t *testing.T) {
	report := `{
  "streams": [{"index": 0, "codec_type": "audio", "sample_rate": "garbage", "channels": 0}],
  "chapters": [],
  "format": {"duration": "36000.0", "bit_rate": "not-a-number", "format_name": "mp3"}
}`
	folder := bookFolder(t, "book.mp3")
	prober := NewProber(stubFFprobe(t, report), 0, nil)

	meta, err := prober.Snapshot(context.Background(), folder, "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if meta.BitrateKbps != nil {
		t.Fatalf("malformed bitrate must stay nil, got %d", *meta.BitrateKbps)
	}
	if meta.SampleRate != nil {
		t.Fatalf("malformed sample rate must stay nil, got %d", *meta.SampleRate)
	}
	if meta.DurationSec == nil || *meta.DurationSec != 36000 {
		t.Fatalf("well-formed duration must still parse, got %v", meta.DurationSec)
	}
	if meta.Stereo != nil {
		t.Fatal("zero channels means unknown, not mono")
	}
	if meta.HasChapters == nil || *meta.HasChapters {
		t.Fatalf("successful probe with no chapters means measured false, got %v", meta.HasChapters)
	}
}

func TestEmbeddedASIN(t *testing.T) {
	folder := bookFolder(t, "book.m4b")
	prober := NewProber(stubFFprobe(t, probeReport), 0, nil)

	file := filepath.Join(folder, "book.m4b")
	id, ok := prober.EmbeddedASIN(context.Background(), file)
	if !ok || id != "B00B5HZGUG" {
		t.Fatalf("EmbeddedASIN = %q, %v", id, ok)
	}
}

func TestAudioFilesSortedAndFiltered(t *testing.T) {
	folder := bookFolder(t, "02.mp3", "01.mp3", "cover.jpg", "notes.txt")
	files, err := AudioFiles(folder)
	if err != nil {
		t.Fatalf("AudioFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 audio files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "01.mp3" || filepath.Base(files[1]) != "02.mp3" {
		t.Fatalf("unexpected order: %v", files)
	}
}
