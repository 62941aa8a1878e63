package disambiguation

import (
	"context"
	"errors"
	"log/slog"

	"animeseries/internal/logging"
)

// Decision is the outcome of one gate invocation. SeriesID is zero for
// create new.
type Decision struct {
	Action   Action
	SeriesID int64
	Choice   int
}

// CreateNew reports whether the operator declined every candidate.
func (d Decision) CreateNew() bool {
	return d.Action == ActionCreateNew
}

// Rename reports whether the chosen series takes the incoming title.
func (d Decision) Rename() bool {
	return d.Action == ActionAttachRename
}

// Gate asks a Decider and maps its answer onto the menu.
type Gate struct {
	decider Decider
	logger  *slog.Logger
}

// NewGate wraps decider. A nil decider always creates new.
func NewGate(decider Decider, logger *slog.Logger) *Gate {
	if decider == nil {
		decider = CreateNewDecider{}
	}
	return &Gate{decider: decider, logger: logging.NewComponentLogger(logger, "disambiguation")}
}

// Decide blocks for one choice. Unreadable, invalid or out-of-range answers
// become create new; only context cancellation is returned as an error.
func (g *Gate) Decide(ctx context.Context, menu Menu) (Decision, error) {
	logger := logging.WithContext(ctx, g.logger)
	choice, err := g.decider.Choose(ctx, menu)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Decision{}, err
		}
		logging.WarnWithContext(logger, "operator choice unreadable; creating new series", "disambiguation_input_invalid",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "answer with one of the listed option numbers"),
			logging.String(logging.FieldImpact, "incoming anime starts its own series"))
		g.log(logger, menu, Decision{Action: ActionCreateNew}, "input_invalid")
		return Decision{Action: ActionCreateNew}, nil
	}

	opt, ok := menu.Lookup(choice)
	if !ok {
		g.log(logger, menu, Decision{Action: ActionCreateNew, Choice: choice}, "choice_out_of_range")
		return Decision{Action: ActionCreateNew, Choice: choice}, nil
	}
	decision := Decision{Action: opt.Action, Choice: choice}
	if opt.Candidate != nil {
		decision.SeriesID = opt.Candidate.SeriesID
	}
	g.log(logger, menu, decision, "operator_choice")
	return decision, nil
}

func (g *Gate) log(logger *slog.Logger, menu Menu, decision Decision, reason string) {
	attrs := logging.DecisionAttrsWithOptions("series_disambiguation", decision.Action.String(), reason, menu.Summary())
	attrs = append(attrs,
		logging.String("incoming_title", menu.IncomingTitle),
		logging.Int("choice", decision.Choice),
		logging.Int("candidates", menu.Candidates()))
	if decision.SeriesID > 0 {
		attrs = append(attrs, logging.Int64(logging.FieldSeriesID, decision.SeriesID))
	}
	logger.Info("disambiguation decision", logging.Args(attrs...)...)
}
