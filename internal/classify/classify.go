package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"shelfr/internal/quality"
)

// ContentType is the first classification axis.
type ContentType string

const (
	// LikelyMissing marks content that should have an identifier but none
	// was found. Routed to quarantine for operator review.
	LikelyMissing ContentType = "likely-missing"
	// Homebrew marks self-produced audio that never had an identifier.
	// Routed to an author-organized destination.
	Homebrew ContentType = "homebrew"
)

// Context is the routing decision for an unresolved candidate.
// OriginalName is the unmodified source folder name: quarantine paths key
// on it so two differently-edition'd unknowns can never collide on an
// identical cleaned title.
type Context struct {
	ContentType  ContentType
	MultiFile    bool
	OriginalName string
	Author       string // parsed author, only set for Homebrew
	Title        string // parsed title, only set for Homebrew
}

// authorHintThreshold is the JaroWinkler similarity above which a parsed
// author portion counts as a known-author match.
const authorHintThreshold = 0.92

var authorTitlePattern = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

// Classify assesses an unresolved candidate folder. hints is the list of
// known author names (typically the library's author directories).
func Classify(folder string, hints []string) (Context, error) {
	name := filepath.Base(folder)
	files, err := quality.AudioFiles(folder)
	if err != nil {
		return Context{}, err
	}

	result := Context{
		ContentType:  LikelyMissing,
		MultiFile:    len(files) > 1,
		OriginalName: name,
	}

	match := authorTitlePattern.FindStringSubmatch(strings.TrimSpace(name))
	if match == nil {
		return result, nil
	}
	author := strings.TrimSpace(match[1])
	title := strings.TrimSpace(match[2])
	if hint, ok := matchAuthorHint(author, hints); ok {
		result.ContentType = Homebrew
		result.Author = hint
		result.Title = title
	}
	return result, nil
}

// matchAuthorHint returns the best-matching known author, preferring the
// hint's spelling over the folder's so homebrew content collects under one
// canonical author directory.
func matchAuthorHint(author string, hints []string) (string, bool) {
	if author == "" {
		return "", false
	}
	metric := metrics.NewJaroWinkler()
	best := ""
	bestScore := 0.0
	lowered := strings.ToLower(author)
	for _, hint := range hints {
		hint = strings.TrimSpace(hint)
		if hint == "" {
			continue
		}
		score := strutil.Similarity(lowered, strings.ToLower(hint), metric)
		if score > bestScore {
			best = hint
			bestScore = score
		}
	}
	if bestScore >= authorHintThreshold {
		return best, true
	}
	return "", false
}
