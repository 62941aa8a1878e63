package consolidation

import (
	"context"
	"errors"
	"log/slog"

	"animeseries/internal/catalog"
	"animeseries/internal/disambiguation"
	"animeseries/internal/logging"
	"animeseries/internal/series"
	"animeseries/internal/services"
	"animeseries/internal/store"
)

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithScorer replaces the title scorer.
func WithScorer(scorer Scorer) EngineOption {
	return func(e *Engine) {
		if scorer != nil {
			e.similarity.scorer = scorer
		}
	}
}

// Engine resolves and links one record at a time.
type Engine struct {
	repo         Repository
	mutator      *series.Mutator
	relationship relationshipResolver
	similarity   similarityResolver
	logger       *slog.Logger
}

// NewEngine wires the resolvers, gate and mutator around repo.
func NewEngine(repo Repository, gate *disambiguation.Gate, logger *slog.Logger, opts ...EngineOption) *Engine {
	logger = logging.NewComponentLogger(logger, "consolidation")
	if gate == nil {
		gate = disambiguation.NewGate(nil, logger)
	}
	e := &Engine{
		repo:         repo,
		mutator:      series.NewMutator(repo, logger),
		relationship: relationshipResolver{repo: repo, logger: logger},
		similarity:   similarityResolver{repo: repo, gate: gate, scorer: TitleScorer{}, logger: logger},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process stores rec, resolves its series and links it. Store and mutation
// failures leave the record unlinked and are reported on the Result; the
// returned error is only set when ctx is done.
func (e *Engine) Process(ctx context.Context, rec *catalog.Record) (Result, error) {
	if rec == nil {
		return Result{Outcome: OutcomeUnlinked, Err: services.Wrap(services.ErrValidation, "consolidation", "process", "record required", nil)}, nil
	}
	ctx = services.WithExternalID(ctx, rec.ExternalID)
	result := Result{ExternalID: rec.ExternalID, Title: rec.Title}

	anime, err := e.ensureStored(services.WithStage(ctx, StageStore), rec)
	if err != nil {
		return e.unlinked(ctx, result, err)
	}
	if anime.Linked() {
		result.Outcome = OutcomeLinked
		result.Method = MethodExisting
		result.SeriesID = anime.SeriesID
		return result, nil
	}

	res, found := e.relationship.resolve(services.WithStage(ctx, StageResolveRelationship), anime)
	if !found {
		res, err = e.similarity.resolve(services.WithStage(ctx, StageResolveSimilarity), anime)
		if err != nil {
			return result, err
		}
	}

	mutateCtx := services.WithStage(ctx, StageMutate)
	var owner *store.Series
	if res.seriesID > 0 {
		owner, err = e.mutator.Attach(mutateCtx, res.seriesID, anime, res.rename)
	} else {
		owner, err = e.mutator.Create(mutateCtx, anime)
	}
	if err != nil {
		return e.unlinked(mutateCtx, result, err)
	}

	result.Outcome = OutcomeLinked
	result.Method = res.method
	result.SeriesID = owner.ID
	result.Renamed = res.rename
	return result, nil
}

func (e *Engine) ensureStored(ctx context.Context, rec *catalog.Record) (*store.Anime, error) {
	existing, err := e.repo.FindAnimeByExternalID(ctx, rec.ExternalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	anime := series.FromRecord(rec)
	if err := e.repo.CreateAnime(ctx, anime); err != nil {
		return nil, err
	}
	return anime, nil
}

func (e *Engine) unlinked(ctx context.Context, result Result, err error) (Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return result, ctxErr
	}
	logging.ErrorWithContext(logging.WithContext(ctx, e.logger), "record left unlinked", "series_mutation_failed",
		logging.Error(err),
		logging.Alert("unlinked_anime"),
		logging.String("error_kind", services.Kind(err)),
		logging.String(logging.FieldErrorHint, "inspect the database file; the anime row stays unlinked"),
		logging.String(logging.FieldImpact, "anime stored without a series"))
	result.Outcome = OutcomeUnlinked
	result.Err = err
	return result, nil
}
