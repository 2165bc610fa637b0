package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"chunkscribe/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Manage the results report",
	}
	reportCmd.AddCommand(newReportUnlockCommand(ctx))
	return reportCmd
}

func newReportUnlockCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Make the results report writable so the next run can overwrite it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Paths.ReportPath); errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s not found", cfg.Paths.ReportPath)
			}
			if err := report.Unlock(cfg.Paths.ReportPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Made %s writable\n", cfg.Paths.ReportPath)
			return nil
		},
	}
}
