package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"shelfr/internal/archive"
	"shelfr/internal/config"
	"shelfr/internal/history"
	"shelfr/internal/importer"
	"shelfr/internal/logging"
	"shelfr/internal/quality"
	"shelfr/internal/resolver"
	"shelfr/internal/services/audible"
)

// inboxCandidates lists candidate folders: explicit args when given,
// otherwise every directory directly under the inbox.
func inboxCandidates(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		folders := make([]string, 0, len(args))
		for _, arg := range args {
			expanded, err := config.ExpandPath(arg)
			if err != nil {
				return nil, err
			}
			info, err := os.Stat(expanded)
			if err != nil {
				return nil, fmt.Errorf("candidate %s: %w", arg, err)
			}
			if !info.IsDir() {
				return nil, fmt.Errorf("candidate %s is not a directory", arg)
			}
			folders = append(folders, expanded)
		}
		return folders, nil
	}

	entries, err := os.ReadDir(cfg.Paths.InboxDir)
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(cfg.Paths.InboxDir, entry.Name()))
		}
	}
	sort.Strings(folders)
	return folders, nil
}

func newResolver(cfg *config.Config, prober *quality.Prober, logger *slog.Logger) *resolver.Resolver {
	var searcher resolver.Searcher
	if cfg.Search.Enabled {
		client, err := audible.New(cfg.Search.BaseURL, time.Duration(cfg.Search.TimeoutSeconds)*time.Second,
			audible.WithRequestsPerSecond(cfg.Search.RequestsPerSecond))
		if err != nil {
			logging.NewComponentLogger(logger, "cli").Warn("external search unavailable", logging.Error(err))
		} else {
			searcher = client
		}
	}
	return resolver.New(prober, searcher, logger)
}

func newImporter(cfg *config.Config, logger *slog.Logger, store *history.Store) *importer.Importer {
	prober := quality.NewProber(cfg.FFprobeBinary(), time.Duration(cfg.Probe.TimeoutSeconds)*time.Second, logger)
	opts := importer.Options{
		Config:    cfg,
		Resolver:  newResolver(cfg, prober, logger),
		Prober:    prober,
		Archivist: archive.New(cfg.Paths.ArchiveDir, logger),
		Logger:    logger,
	}
	if store != nil {
		opts.History = store
	}
	return importer.New(opts)
}

func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.NewComponentLogger(logger, "cli").Warn("history store unavailable, run will not be recorded",
			logging.Error(err))
		return nil
	}
	return store
}
