package consolidation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"animeseries/internal/checkpoint"
	"animeseries/internal/logging"
	"animeseries/internal/services"
)

// Driver feeds catalog records through an Engine and keeps the checkpoint.
type Driver struct {
	catalog    Catalog
	engine     *Engine
	checkpoint CheckpointStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewDriver constructs a Driver.
func NewDriver(cat Catalog, engine *Engine, cp CheckpointStore, logger *slog.Logger) *Driver {
	return &Driver{
		catalog:    cat,
		engine:     engine,
		checkpoint: cp,
		logger:     logging.NewComponentLogger(logger, "driver"),
		now:        time.Now,
	}
}

// Run walks catalog pages from the checkpoint cursor until target records
// have been processed (skips excluded) or the listing ends. A target of zero
// or less means no limit.
func (d *Driver) Run(ctx context.Context, target int) (Summary, error) {
	ctx, summary := d.begin(ctx)
	state, err := d.checkpoint.Load()
	if err != nil {
		return d.finish(ctx, summary, err)
	}
	summary.Cursor = state.Cursor
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("consolidation run started",
		logging.Int("cursor", state.Cursor),
		logging.Int("target", target),
		logging.Int("already_processed", state.ProcessedCount()))

	reached := func() bool { return target > 0 && summary.Processed() >= target }
	for !reached() {
		page, err := d.catalog.FetchPage(services.WithStage(ctx, StageFetch), state.Cursor)
		if err != nil {
			return d.finish(ctx, summary, fmt.Errorf("fetch page %d: %w", state.Cursor, err))
		}
		summary.Pages++
		logger.Debug("catalog page fetched",
			logging.Int("page", page.Number),
			logging.Int("records", len(page.Records)),
			logging.Int("total_pages", page.TotalPages))

		for _, listed := range page.Records {
			if reached() {
				return d.finish(ctx, summary, nil)
			}
			res, err := d.processID(ctx, state, listed.ExternalID)
			summary.add(res)
			if err != nil {
				return d.finish(ctx, summary, err)
			}
		}

		if !page.HasNext {
			summary.Exhausted = true
			logger.Info("catalog listing exhausted", logging.Int("page", state.Cursor))
			break
		}
		state.Cursor++
		summary.Cursor = state.Cursor
		if err := d.save(ctx, state); err != nil {
			return d.finish(ctx, summary, err)
		}
	}
	return d.finish(ctx, summary, nil)
}

// RunIDs processes an explicit list of external ids without moving the cursor.
func (d *Driver) RunIDs(ctx context.Context, ids []int64) (Summary, error) {
	ctx, summary := d.begin(ctx)
	state, err := d.checkpoint.Load()
	if err != nil {
		return d.finish(ctx, summary, err)
	}
	summary.Cursor = state.Cursor
	for _, id := range ids {
		res, err := d.processID(ctx, state, id)
		summary.add(res)
		if err != nil {
			return d.finish(ctx, summary, err)
		}
	}
	return d.finish(ctx, summary, nil)
}

func (d *Driver) begin(ctx context.Context) (context.Context, Summary) {
	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
	}
	return ctx, Summary{RunID: runID, StartedAt: d.now()}
}

func (d *Driver) finish(ctx context.Context, summary Summary, err error) (Summary, error) {
	summary.FinishedAt = d.now()
	attrs := []logging.Attr{
		logging.Int("linked", summary.Linked),
		logging.Int("unlinked", summary.Unlinked),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("created", summary.Created),
		logging.Int("pages", summary.Pages),
		logging.Int("cursor", summary.Cursor),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	}
	logger := logging.WithContext(ctx, d.logger)
	if err != nil {
		attrs = append(attrs, logging.Error(err))
		logging.ErrorWithContext(logger, "consolidation run stopped", "run_aborted",
			append(attrs, logging.String(logging.FieldErrorHint, "rerun to resume from the checkpoint"))...)
		return summary, err
	}
	logger.Info("consolidation run finished", logging.Args(attrs...)...)
	return summary, nil
}

// processID takes one id to a terminal outcome. Errors are returned only
// when the run cannot continue.
func (d *Driver) processID(ctx context.Context, state *checkpoint.State, id int64) (Result, error) {
	ctx = services.WithExternalID(ctx, id)
	logger := logging.WithContext(ctx, d.logger)
	if state.ShouldSkip(id) {
		logger.Debug("record already handled", logging.String(logging.FieldOutcome, string(OutcomeSkipped)))
		return Result{ExternalID: id, Outcome: OutcomeSkipped}, nil
	}

	rec, err := d.catalog.FetchRecord(services.WithStage(ctx, StageFetch), id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{ExternalID: id}, ctxErr
		}
		if !errors.Is(err, services.ErrNotFound) {
			return Result{ExternalID: id}, fmt.Errorf("fetch record %d: %w", id, err)
		}
		logging.WarnWithContext(logger, "record missing from catalog", "record_not_found",
			logging.Error(err),
			logging.String(logging.FieldOutcome, string(OutcomeFailed)),
			logging.String(logging.FieldErrorHint, "use checkpoint reset --failed-only to retry later"),
			logging.String(logging.FieldImpact, "record skipped on future runs"))
		state.MarkFailed(id)
		res := Result{ExternalID: id, Outcome: OutcomeFailed, Err: err}
		return res, d.save(ctx, state)
	}

	res, err := d.engine.Process(ctx, rec)
	if err != nil {
		return res, err
	}
	state.MarkProcessed(id)
	logger.Info("record consolidated",
		logging.String("title", res.Title),
		logging.String(logging.FieldOutcome, string(res.Outcome)),
		logging.String("method", res.Method),
		logging.Int64(logging.FieldSeriesID, res.SeriesID),
		logging.Bool("renamed", res.Renamed))
	return res, d.save(ctx, state)
}

func (d *Driver) save(ctx context.Context, state *checkpoint.State) error {
	if err := d.checkpoint.Save(state); err != nil {
		logging.ErrorWithContext(logging.WithContext(services.WithStage(ctx, StageCheckpoint), d.logger),
			"checkpoint save failed", "checkpoint_save_failed", logging.Error(err))
		return err
	}
	return nil
}
