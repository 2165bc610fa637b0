package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"chunkscribe/internal/pipeline"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List input audio files or generated chunks",
	}
	listCmd.AddCommand(newListAudioCommand(ctx))
	listCmd.AddCommand(newListChunksCommand(ctx))
	return listCmd
}

func newListAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audio",
		Short: "List FLAC files waiting in the audio directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sources, err := pipeline.DiscoverSources(cfg.Paths.AudioDir)
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No FLAC files in %s\n", cfg.Paths.AudioDir)
				return nil
			}

			rows := make([][]string, 0, len(sources))
			for _, source := range sources {
				size := "?"
				if info, err := os.Stat(source.Path); err == nil {
					size = fmt.Sprintf("%.2f MB", float64(info.Size())/(1024*1024))
				}
				rows = append(rows, []string{filepath.Base(source.Path), size})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newListChunksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chunks",
		Short: "List generated chunk artifacts per source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			counts, err := countChunks(cfg.Paths.ChunksDir)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No chunks found in %s\n", cfg.Paths.ChunksDir)
				return nil
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)

			total := 0
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, strconv.Itoa(counts[name])})
				total += counts[name]
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Chunks"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d chunk(s)\n", total)
			return nil
		},
	}
}

func countChunks(chunksDir string) (map[string]int, error) {
	entries, err := os.ReadDir(chunksDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan chunks directory: %w", err)
	}

	counts := map[string]int{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(chunksDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("scan chunk directory %s: %w", entry.Name(), err)
		}
		count := 0
		for _, file := range files {
			if !file.IsDir() && strings.EqualFold(filepath.Ext(file.Name()), ".flac") {
				count++
			}
		}
		if count > 0 {
			counts[entry.Name()] = count
		}
	}
	return counts, nil
}
