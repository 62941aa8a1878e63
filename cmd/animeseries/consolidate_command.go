package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"animeseries/internal/catalog"
	"animeseries/internal/checkpoint"
	"animeseries/internal/config"
	"animeseries/internal/consolidation"
	"animeseries/internal/disambiguation"
	"animeseries/internal/logging"
	"animeseries/internal/preflight"
	"animeseries/internal/runlock"
	"animeseries/internal/services"
	"animeseries/internal/store"
)

type consolidateOptions struct {
	target        int
	ids           []int64
	decider       string
	script        string
	skipPreflight bool
}

func newConsolidateCommand(ctx *commandContext) *cobra.Command {
	var opts consolidateOptions

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Ingest catalog records and group them into series",
		Long: `Walk the catalog listing from the saved checkpoint, or process the given
--id values, and attach each record to a series. Progress is saved after
every record, so an interrupted run resumes where it stopped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg, err := applyConsolidateFlags(cmd, cfg, opts)
			if err != nil {
				return err
			}
			return runConsolidate(cmd, runCfg, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.target, "target", "n", 0, "Number of records to process (default from config)")
	cmd.Flags().Int64SliceVar(&opts.ids, "id", nil, "Process specific catalog ids instead of walking pages (repeatable)")
	cmd.Flags().StringVar(&opts.decider, "decider", "", "Disambiguation decider: console, scripted or create_new")
	cmd.Flags().StringVar(&opts.script, "script", "", "Answer file for the scripted decider")
	cmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "Start without checking directories and catalog reachability")
	return cmd
}

func applyConsolidateFlags(cmd *cobra.Command, cfg *config.Config, opts consolidateOptions) (*config.Config, error) {
	runCfg := *cfg
	if cmd.Flags().Changed("target") {
		runCfg.Consolidation.TargetCount = opts.target
	}
	if strings.TrimSpace(opts.decider) != "" {
		runCfg.Consolidation.Decider = opts.decider
	}
	if strings.TrimSpace(opts.script) != "" {
		runCfg.Consolidation.ScriptPath = opts.script
		if !cmd.Flags().Changed("decider") {
			runCfg.Consolidation.Decider = config.DeciderScripted
		}
	}
	if err := runCfg.Normalize(); err != nil {
		return nil, err
	}
	if err := runCfg.Validate(); err != nil {
		return nil, err
	}
	return &runCfg, nil
}

func runConsolidate(cmd *cobra.Command, cfg *config.Config, opts consolidateOptions) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	logger, err := logging.NewForRun(cfg, runID)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runCtx := services.WithRunID(signalCtx, runID)
	logging.PruneRunLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, logging.RunLogPrefix+runID+".log")

	client, err := catalog.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	rep := newReport(out)

	if !opts.skipPreflight {
		if failed := preflight.Failed(preflight.RunAll(runCtx, cfg, client)); len(failed) > 0 {
			rep.section("Preflight")
			for _, r := range failed {
				rep.line(r.Name, verdictFailed, r.Detail)
			}
			return errors.New("preflight checks failed; fix the issues above or pass --skip-preflight")
		}
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	decider, err := disambiguation.New(cfg.Consolidation.Decider, cfg.Consolidation.ScriptPath, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}
	engine := consolidation.NewEngine(st, disambiguation.NewGate(decider, logger), logger)
	driver := consolidation.NewDriver(client, engine, checkpoint.NewFile(cfg.Paths.CheckpointPath, logger), logger)

	var summary consolidation.Summary
	if len(opts.ids) > 0 {
		summary, err = driver.RunIDs(runCtx, opts.ids)
	} else {
		summary, err = driver.Run(runCtx, cfg.Consolidation.TargetCount)
	}
	writeSummary(rep, summary, len(opts.ids) > 0)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Run interrupted; rerun to resume from the checkpoint.")
	}
	return err
}

func writeSummary(rep *report, summary consolidation.Summary, idMode bool) {
	rep.section("Consolidation")
	rep.note("Run", summary.RunID)
	rep.line("Linked", verdictGood, fmt.Sprintf("%d (%d new series, %d renamed)", summary.Linked, summary.Created, summary.Renamed))
	rep.line("Unlinked", countVerdict(summary.Unlinked), strconv.Itoa(summary.Unlinked))
	rep.line("Failed", countVerdict(summary.Failed), strconv.Itoa(summary.Failed))
	rep.note("Skipped", strconv.Itoa(summary.Skipped))
	if !idMode {
		position := fmt.Sprintf("page %d (%d fetched)", summary.Cursor, summary.Pages)
		if summary.Exhausted {
			position += ", listing exhausted"
		}
		rep.note("Cursor", position)
	}
	if !summary.FinishedAt.IsZero() {
		rep.note("Elapsed", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond).String())
	}
}
