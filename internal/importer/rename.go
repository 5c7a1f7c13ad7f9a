package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shelfr/internal/logging"
	"shelfr/internal/quality"
	"shelfr/internal/services"
)

// renamePass renames a candidate's audio files to their canonical names.
//
// The file count is checked before anything else: more than one audio file
// with no identifier renames zero files. Track order in multi-file rips
// lives in the original filenames, and canonicalizing them without an
// identifier to anchor the edition destroys information that cannot be
// recovered. Folder relocation is still allowed; this guard is only about
// file names and is not configurable.
//
// Returns the new file names, in placement order.
func (i *Importer) renamePass(ctx context.Context, folder, id, title string, dryRun bool) ([]string, error) {
	logger := logging.WithContext(ctx, i.logger)

	files, err := quality.AudioFiles(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "importer", "rename", "list audio files", err)
	}

	if len(files) > 1 && id == "" {
		logger.Info("multi-file folder without identifier, keeping original filenames",
			logging.Int("audio_files", len(files)))
		return nil, nil
	}

	var renamed []string
	for n, file := range files {
		partTitle := title
		if len(files) > 1 {
			partTitle = fmt.Sprintf("%s - %02d", title, n+1)
		}
		newName := i.namer.FileName(partTitle, id, filepath.Ext(file))
		if newName == filepath.Base(file) {
			renamed = append(renamed, newName)
			continue
		}
		if !dryRun {
			if err := os.Rename(file, filepath.Join(folder, newName)); err != nil {
				return renamed, services.Wrap(services.ErrExternalTool, "importer", "rename", "rename audio file", err)
			}
		}
		renamed = append(renamed, newName)
	}
	return renamed, nil
}
