package consolidation

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"animeseries/internal/disambiguation"
	"animeseries/internal/logging"
	"animeseries/internal/series"
	"animeseries/internal/store"
	"animeseries/internal/textutil"
)

const (
	// CandidateThreshold is the minimum core overlap for a similarity candidate.
	CandidateThreshold = 0.4
	// AutoResolveThreshold must be exceeded, together with a simple title
	// match, to attach without asking.
	AutoResolveThreshold = 0.8
	// SimpleCaseMaxWords bounds the shorter title in a simple match.
	SimpleCaseMaxWords = 2
)

type candidate struct {
	series  *store.Series
	overlap float64
}

type similarityResolver struct {
	repo   Repository
	gate   *disambiguation.Gate
	scorer Scorer
	logger *slog.Logger
}

// resolve scans every series. Only gate cancellation is returned as an error.
func (s similarityResolver) resolve(ctx context.Context, anime *store.Anime) (resolution, error) {
	logger := logging.WithContext(ctx, s.logger)
	all, err := s.repo.ListSeries(ctx)
	if err != nil {
		logging.WarnWithContext(logger, "series scan failed", "series_scan_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "anime starts a new series"))
		return createNew(), nil
	}

	candidates := s.candidates(anime.Title, all)
	for _, c := range candidates {
		containment, shorterWords := s.scorer.Containment(anime.Title, c.series.Title)
		simple := containment >= 1.0 && shorterWords <= SimpleCaseMaxWords
		if c.overlap > AutoResolveThreshold && simple {
			rename := renameForSimilarity(anime, c.series)
			attrs := logging.DecisionAttrs("similarity_auto_resolve", "attach", "high overlap simple title")
			attrs = append(attrs,
				logging.Int64(logging.FieldSeriesID, c.series.ID),
				logging.Float64("overlap", c.overlap),
				logging.Float64("containment", containment),
				logging.Bool("rename", rename))
			logger.Info("similar series matched", logging.Args(attrs...)...)
			return resolution{seriesID: c.series.ID, rename: rename, method: MethodSimilarity}, nil
		}

		menu := disambiguation.NewMenu(anime.Title, anime.Year,
			fmt.Sprintf("Borderline similarity (overlap %.2f, containment %.2f)", c.overlap, containment),
			[]disambiguation.Candidate{{
				SeriesID:    c.series.ID,
				Title:       c.series.Title,
				StartYear:   c.series.StartYear,
				Overlap:     c.overlap,
				Containment: containment,
			}})
		decision, err := s.gate.Decide(ctx, menu)
		if err != nil {
			return resolution{}, err
		}
		if !decision.CreateNew() {
			return resolution{seriesID: decision.SeriesID, rename: decision.Rename(), method: MethodDisambiguation}, nil
		}
	}
	if len(candidates) > 0 {
		return createNew(), nil
	}
	return s.partial(ctx, anime, all)
}

// candidates returns series at or above CandidateThreshold, best first and
// lower ids first on ties.
func (s similarityResolver) candidates(title string, all []*store.Series) []candidate {
	var out []candidate
	for _, existing := range all {
		overlap := s.scorer.Overlap(title, existing.Title)
		if overlap >= CandidateThreshold {
			out = append(out, candidate{series: existing, overlap: overlap})
		}
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		if c := cmp.Compare(b.overlap, a.overlap); c != 0 {
			return c
		}
		return cmp.Compare(a.series.ID, b.series.ID)
	})
	return out
}

// partial offers every series sharing a core word or a title substring in
// a single menu.
func (s similarityResolver) partial(ctx context.Context, anime *store.Anime, all []*store.Series) (resolution, error) {
	var offered []disambiguation.Candidate
	for _, existing := range all {
		if !textutil.SharesCoreWord(anime.Title, existing.Title) && !textutil.NormalizedSubstring(anime.Title, existing.Title) {
			continue
		}
		containment, _ := s.scorer.Containment(anime.Title, existing.Title)
		offered = append(offered, disambiguation.Candidate{
			SeriesID:    existing.ID,
			Title:       existing.Title,
			StartYear:   existing.StartYear,
			Overlap:     s.scorer.Overlap(anime.Title, existing.Title),
			Containment: containment,
		})
	}
	if len(offered) == 0 {
		return createNew(), nil
	}

	menu := disambiguation.NewMenu(anime.Title, anime.Year, "Partial title matches", offered)
	decision, err := s.gate.Decide(ctx, menu)
	if err != nil {
		return resolution{}, err
	}
	if decision.CreateNew() {
		return createNew(), nil
	}
	return resolution{seriesID: decision.SeriesID, rename: decision.Rename(), method: MethodPartial}, nil
}

// renameForSimilarity applies the auto-resolve rename rule: an earlier year
// wins, otherwise a shorter main-entry title wins.
func renameForSimilarity(anime *store.Anime, existing *store.Series) bool {
	if anime.Year > 0 && existing.StartYear > 0 && anime.Year < existing.StartYear {
		return true
	}
	shorter := utf8.RuneCountInString(strings.TrimSpace(anime.Title)) < utf8.RuneCountInString(strings.TrimSpace(existing.Title))
	return shorter && series.DetectType(anime) == series.TypeMain
}
