// Package naming builds canonical folder and file names from resolved
// metadata. The import orchestrator decides whether and where content is
// placed; this package decides only spelling.
package naming

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shelfr/internal/textutil"
)

// Namer turns resolved identity into target name strings.
type Namer interface {
	// FolderName yields the library folder name for a resolved work.
	FolderName(author, title, asin string) string
	// FileName yields the canonical name for a single audio file,
	// preserving the original extension.
	FileName(title, asin, ext string) string
}

// maxNameLength keeps folder names comfortably under common filesystem
// limits after sanitization.
const maxNameLength = 200

// Default is the standard name builder: title-cased, sanitized, with the
// identifier in a trailing brace tag.
type Default struct {
	titler cases.Caser
}

// NewDefault returns the standard Namer.
func NewDefault() *Default {
	return &Default{titler: cases.Title(language.Und, cases.NoLower)}
}

func (d *Default) FolderName(author, title, asin string) string {
	name := d.clean(title)
	if name == "" {
		name = "Unknown Title"
	}
	if asin != "" {
		name = fmt.Sprintf("%s {%s}", name, asin)
	}
	cleanAuthor := d.clean(author)
	if cleanAuthor == "" {
		return name
	}
	return cleanAuthor + "/" + name
}

func (d *Default) FileName(title, asin, ext string) string {
	name := d.clean(title)
	if name == "" {
		name = "Unknown Title"
	}
	if asin != "" {
		name = fmt.Sprintf("%s {%s}", name, asin)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + ext
}

func (d *Default) clean(s string) string {
	cleaned := textutil.SanitizeFileName(d.titler.String(strings.TrimSpace(s)))
	return strings.TrimSpace(truncate(cleaned, maxNameLength))
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
