package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"animeseries/internal/logging"
	"animeseries/internal/runlock"
)

func newCheckpointCommand(ctx *commandContext) *cobra.Command {
	checkpointCmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect or reset consolidation progress",
	}
	checkpointCmd.AddCommand(newCheckpointShowCommand(ctx))
	checkpointCmd.AddCommand(newCheckpointResetCommand(ctx))
	return checkpointCmd
}

func newCheckpointShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved cursor and record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := ctx.checkpointFile(logging.NewNop())
			if err != nil {
				return err
			}
			state, err := file.Load()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, map[string]any{
					"path":       file.Path(),
					"cursor":     state.Cursor,
					"processed":  state.ProcessedCount(),
					"failed":     state.Failed(),
					"updated_at": state.UpdatedAt,
				})
			}

			rep := newReport(cmd.OutOrStdout())
			rep.section("Checkpoint")
			rep.note("Path", file.Path())
			rep.note("Next page", strconv.Itoa(state.Cursor))
			rep.note("Processed", strconv.Itoa(state.ProcessedCount()))
			rep.line("Failed", countVerdict(state.FailedCount()), strconv.Itoa(state.FailedCount()))
			updated := "never"
			if !state.UpdatedAt.IsZero() {
				updated = state.UpdatedAt.Local().Format(time.RFC3339)
			}
			rep.note("Updated", updated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func newCheckpointResetCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start the next run from the first page",
		Long: `Remove the checkpoint so the next run starts from page one. Records already
stored keep their series and are not reassigned. With --failed-only the cursor
and processed ids are kept and only the failed ids are cleared for retry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Release()

			file, err := ctx.checkpointFile(ctx.logger())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !failedOnly {
				if err := file.Remove(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Checkpoint cleared; the next run starts from page 1.")
				return nil
			}

			state, err := file.Load()
			if err != nil {
				return err
			}
			cleared := state.ClearFailed()
			if err := file.Save(state); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %d failed id(s); they will be retried on the next run.\n", cleared)
			return nil
		},
	}
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "Only forget failed ids")
	return cmd
}
