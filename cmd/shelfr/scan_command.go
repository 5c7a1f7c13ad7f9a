package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"shelfr/internal/quality"
)

// newScanCommand resolves identifiers without importing anything, so the
// operator can see what a run would work with before committing.
func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder...]",
		Short: "Resolve inbox candidates without importing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newLoggerFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			folders, err := inboxCandidates(cfg, args)
			if err != nil {
				return err
			}
			if len(folders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Inbox is empty.")
				return nil
			}

			prober := quality.NewProber(cfg.FFprobeBinary(), time.Duration(cfg.Probe.TimeoutSeconds)*time.Second, logger)
			res := newResolver(cfg, prober, logger)

			rows := make([][]string, 0, len(folders))
			for _, folder := range folders {
				resolution, err := res.Resolve(cmd.Context(), folder, "", cfg.Search.Enabled, cfg.Search.ConfidenceThreshold)
				if err != nil {
					rows = append(rows, []string{filepath.Base(folder), "", "error", err.Error()})
					continue
				}
				confidence := ""
				if resolution.Confidence > 0 {
					confidence = fmt.Sprintf("%.2f", resolution.Confidence)
				}
				rows = append(rows, []string{
					filepath.Base(folder),
					resolution.ASIN,
					string(resolution.Source),
					confidence,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Candidate", "ASIN", "Source", "Confidence"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
