package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SidecarName is the file name of the optional colocated metadata document.
const SidecarName = "metadata.json"

// Sidecar is the colocated metadata document. All fields are optional; a
// parseable sidecar with a valid identifier outranks folder-name parsing.
type Sidecar struct {
	ASIN     string   `json:"asin"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Narrator string   `json:"narrator"`
	Language string   `json:"language"`
	Abridged *bool    `json:"abridged"`
}

// Author returns the first listed author, if any.
func (s *Sidecar) Author() string {
	if s == nil || len(s.Authors) == 0 {
		return ""
	}
	return strings.TrimSpace(s.Authors[0])
}

// LoadSidecar reads the sidecar document from folder. A missing sidecar
// returns (nil, nil); an unreadable or malformed one returns an error so
// the caller can log it and continue the cascade.
func LoadSidecar(folder string) (*Sidecar, error) {
	path := filepath.Join(folder, SidecarName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sidecar: %w", err)
	}
	var sidecar Sidecar
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return nil, fmt.Errorf("parse sidecar: %w", err)
	}
	sidecar.ASIN = strings.TrimSpace(sidecar.ASIN)
	sidecar.Title = strings.TrimSpace(sidecar.Title)
	sidecar.Language = strings.ToLower(strings.TrimSpace(sidecar.Language))
	return &sidecar, nil
}
