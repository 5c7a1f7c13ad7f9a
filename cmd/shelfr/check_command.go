package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shelfr/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories, binaries, and search connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checks := preflight.Run(cmd.Context(), cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderChecks(checks))
			if preflight.Failed(checks) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}
}
