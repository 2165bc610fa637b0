package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"chunkscribe/internal/logging"
	"chunkscribe/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Chunk every FLAC file and transcribe all chunks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			// One writer per chunks tree: refuse to start while another run
			// holds the lock.
			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "chunkscribe.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another chunkscribe run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			p, err := pipeline.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close() }()

			rep, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			if len(rep.Sections) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No FLAC files found in %s\n", cfg.Paths.AudioDir)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d file(s), %d chunk(s), %d failure(s)\n",
				len(rep.Sections), rep.EntryCount(), rep.FailureCount())
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s (read-only)\n", cfg.Paths.ReportPath)
			return nil
		},
	}
}
