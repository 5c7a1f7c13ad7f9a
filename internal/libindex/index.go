package libindex

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"shelfr/internal/asin"
	"shelfr/internal/logging"
)

// Entry is the minimal description of one existing library copy.
type Entry struct {
	ASIN   string
	Path   string
	Author string
	Title  string
}

// Index maps identifier to existing entry. Read-only after Build.
//
// At most one entry exists per identifier: the first one seen wins and
// later duplicates are logged but invisible to Lookup. Extending this to
// multiple entries per identifier only requires widening the value type to
// a slice and iterating candidates in the decision engine.
type Index struct {
	entries map[string]Entry
	authors []string
}

// asinTagPattern strips the identifier tag when deriving a display title.
var asinTagPattern = regexp.MustCompile(`\s*[{\[]\s*(?:ASIN[.:]\s*)?[A-Z0-9]{10}\s*[}\]]`)

// Build enumerates the library root once. The expected layout is
// <root>/<author>/<book folder>, with the identifier embedded in the book
// folder name; book folders sitting directly under the root are indexed
// with an empty author.
func Build(root string, logger *slog.Logger) (*Index, error) {
	logger = logging.NewComponentLogger(logger, "libindex")
	index := &Index{entries: make(map[string]Entry)}

	topLevel, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("library root missing, starting with empty index", logging.String("root", root))
			return index, nil
		}
		return nil, err
	}

	for _, top := range topLevel {
		if !top.IsDir() {
			continue
		}
		topPath := filepath.Join(root, top.Name())
		if id, ok := asin.Extract(top.Name()); ok {
			index.add(logger, Entry{ASIN: id, Path: topPath, Title: displayTitle(top.Name())})
			continue
		}
		author := top.Name()
		index.authors = append(index.authors, author)
		books, err := os.ReadDir(topPath)
		if err != nil {
			logger.Warn("author directory unreadable, skipped", logging.String("path", topPath), logging.Error(err))
			continue
		}
		for _, book := range books {
			if !book.IsDir() {
				continue
			}
			id, ok := asin.Extract(book.Name())
			if !ok {
				continue
			}
			index.add(logger, Entry{
				ASIN:   id,
				Path:   filepath.Join(topPath, book.Name()),
				Author: author,
				Title:  displayTitle(book.Name()),
			})
		}
	}

	sort.Strings(index.authors)
	logger.Info("library index built",
		logging.String("root", root),
		logging.Int("entries", len(index.entries)),
		logging.Int("authors", len(index.authors)))
	return index, nil
}

func (i *Index) add(logger *slog.Logger, entry Entry) {
	if existing, ok := i.entries[entry.ASIN]; ok {
		logger.Warn("duplicate identifier in library, first entry kept",
			logging.String("asin", entry.ASIN),
			logging.String("kept", existing.Path),
			logging.String("ignored", entry.Path))
		return
	}
	i.entries[entry.ASIN] = entry
}

// Lookup returns the library entry for the identifier, if any.
func (i *Index) Lookup(id string) (Entry, bool) {
	entry, ok := i.entries[id]
	return entry, ok
}

// Len returns the number of indexed entries.
func (i *Index) Len() int {
	return len(i.entries)
}

// Authors lists the library's author directory names, sorted. The
// classifier uses them as known-author hints.
func (i *Index) Authors() []string {
	out := make([]string, len(i.authors))
	copy(out, i.authors)
	return out
}

func displayTitle(name string) string {
	title := asinTagPattern.ReplaceAllString(name, "")
	return strings.TrimSpace(title)
}
