package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"chunkscribe/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the environment before running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			summary := preflight.Run(cfg)

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(summary.Checks))
			for _, check := range summary.Checks {
				rows = append(rows, []string{checkMark(out, check), check.Name, check.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"", "Check", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if !summary.Passed() {
				return errors.New("preflight checks failed")
			}
			fmt.Fprintln(out, "All required checks passed")
			return nil
		},
	}
}

// checkMark colors the status only when the sink the table goes to is a
// terminal; redirected or captured output stays free of escape codes.
func checkMark(out io.Writer, check preflight.Result) string {
	mark := "FAIL"
	color := "\x1b[31m"
	switch {
	case check.Passed:
		mark = "OK"
		color = "\x1b[32m"
	case check.Optional:
		mark = "WARN"
		color = "\x1b[33m"
	}
	if file, ok := out.(*os.File); ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return color + mark + "\x1b[0m"
	}
	return mark
}
