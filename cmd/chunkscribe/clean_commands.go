package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"chunkscribe/internal/report"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated chunks or the results report",
	}
	cleanCmd.AddCommand(newCleanChunksCommand(ctx))
	cleanCmd.AddCommand(newCleanReportCommand(ctx))
	return cleanCmd
}

func newCleanChunksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chunks",
		Short: "Delete the chunk output tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Paths.ChunksDir); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not found\n", cfg.Paths.ChunksDir)
				return nil
			}
			if err := os.RemoveAll(cfg.Paths.ChunksDir); err != nil {
				return fmt.Errorf("remove chunks: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", cfg.Paths.ChunksDir)
			return nil
		},
	}
}

func newCleanReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Delete the results report (unlocking it first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Paths.ReportPath); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not found\n", cfg.Paths.ReportPath)
				return nil
			}
			if err := report.Unlock(cfg.Paths.ReportPath); err != nil {
				return err
			}
			if err := os.Remove(cfg.Paths.ReportPath); err != nil {
				return fmt.Errorf("remove report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", cfg.Paths.ReportPath)
			return nil
		},
	}
}
