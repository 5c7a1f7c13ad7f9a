package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteAudioFile creates an audio fixture named name under dir, creating dir
// if needed. The content is derived from the name so a test can verify the
// file survived a move byte for byte. Returns the full path.
func WriteAudioFile(t testing.TB, dir, name string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio-"+name), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFile fills the target path with size bytes of repeating filler,
// creating parent directories as needed. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	pattern := []byte("shelfr fixture ")
	buf := bytes.Repeat(pattern, 32*1024/len(pattern))
	for written := int64(0); written < size; {
		n := int64(len(buf))
		if remaining := size - written; remaining < n {
			n = remaining
		}
		if _, err := f.Write(buf[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		written += n
	}
}
