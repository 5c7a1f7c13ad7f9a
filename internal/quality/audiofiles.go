package quality

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".m4b":  {},
	".m4a":  {},
	".mp3":  {},
	".opus": {},
	".ogg":  {},
	".flac": {},
	".wav":  {},
	".aac":  {},
}

// IsAudioFile reports whether the file name carries a recognized audio extension.
func IsAudioFile(name string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// AudioFiles lists the audio files directly inside dir, sorted by name.
// Subdirectories are not descended: a candidate folder is expected to hold
// its audio files at the top level.
func AudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsAudioFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
