package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"shelfr/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show results of past import runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled in the configuration")
			}
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No import history yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.Reason
				if entry.Error != "" {
					detail = entry.Error
				}
				mode := ""
				if entry.DryRun {
					mode = "dry-run"
				}
				rows = append(rows, []string{
					entry.RecordedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(entry.SourcePath),
					entry.ASIN,
					entry.Decision,
					mode,
					detail,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"When", "Candidate", "ASIN", "Outcome", "Mode", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of entries to show")
	return cmd
}
