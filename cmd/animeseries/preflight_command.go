package main

import (
	"errors"

	"github.com/spf13/cobra"

	"animeseries/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check directories and catalog reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, nil)

			rep := newReport(cmd.OutOrStdout())
			rep.section("Preflight")
			for _, r := range results {
				v := verdictGood
				if !r.Passed {
					v = verdictFailed
				}
				rep.line(r.Name, v, r.Detail)
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
