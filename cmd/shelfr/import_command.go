package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shelfr/internal/preflight"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [folder...]",
		Short: "Import audiobook folders into the library",
		Long: "Resolves identifiers, detects duplicates, and places each candidate.\n" +
			"Without arguments every folder in the inbox is a candidate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newLoggerFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			// One writer at a time: a second concurrent import would race
			// on the index and on placement targets.
			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "shelfr.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire import lock: %w", err)
			}
			if !locked {
				return errors.New("another shelfr import is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			checks := preflight.Run(cmd.Context(), cfg)
			if preflight.Failed(checks) {
				fmt.Fprintln(cmd.OutOrStdout(), renderChecks(checks))
				return errors.New("preflight checks failed; fix the issues above and retry")
			}

			folders, err := inboxCandidates(cfg, args)
			if err != nil {
				return err
			}
			if len(folders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			store := openHistory(cfg, logger)
			if store != nil {
				defer store.Close()
			}

			runID := uuid.NewString()
			imp := newImporter(cfg, logger, store)
			summary := imp.Run(cmd.Context(), runID, folders, dryRun)

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(cmd.OutOrStdout(), summary))
			if summary.Count("FAILED") > 0 {
				return fmt.Errorf("%d candidate(s) failed", summary.Count("FAILED"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Resolve and decide without touching any files")
	return cmd
}
