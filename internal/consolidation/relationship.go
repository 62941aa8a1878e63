package consolidation

import (
	"context"
	"log/slog"
	"strings"

	"animeseries/internal/logging"
	"animeseries/internal/series"
	"animeseries/internal/store"
)

// resolution is where an anime should go. seriesID zero means create new.
type resolution struct {
	seriesID int64
	rename   bool
	method   string
	detail   string
}

func createNew() resolution {
	return resolution{method: MethodNew}
}

type relationshipResolver struct {
	repo   Repository
	logger *slog.Logger
}

// resolve returns the series owning the first related record, walking edges
// in catalog order.
func (r relationshipResolver) resolve(ctx context.Context, anime *store.Anime) (resolution, bool) {
	logger := logging.WithContext(ctx, r.logger)
	for _, rel := range anime.Relations {
		related, err := r.repo.FindAnimeByExternalID(ctx, rel.RelatedExternalID)
		if err != nil {
			logging.WarnWithContext(logger, "related anime lookup failed", "relation_lookup_failed",
				logging.Int64("related_external_id", rel.RelatedExternalID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "relation edge ignored"))
			continue
		}
		if !related.Linked() {
			continue
		}
		owner, err := r.repo.FindSeriesByID(ctx, related.SeriesID)
		if err != nil || owner == nil {
			logging.WarnWithContext(logger, "related series lookup failed", "relation_lookup_failed",
				logging.Int64(logging.FieldSeriesID, related.SeriesID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "relation edge ignored"))
			continue
		}
		rename := renameForRelation(rel.Type, anime.Year, owner.StartYear)
		logger.Debug("relation matched series",
			logging.String("relation_type", rel.Type),
			logging.Int64("related_external_id", rel.RelatedExternalID),
			logging.Int64(logging.FieldSeriesID, owner.ID),
			logging.Bool("rename", rename))
		return resolution{seriesID: owner.ID, rename: rename, method: MethodRelationship, detail: rel.Type}, true
	}
	return resolution{}, false
}

// renameForRelation decides whether the incoming record replaces the series
// title. Years of zero are unknown.
func renameForRelation(relationType string, incomingYear, seriesMinYear int) bool {
	earlier := incomingYear > 0 && seriesMinYear > 0 && incomingYear < seriesMinYear
	switch {
	case strings.EqualFold(relationType, series.RelationSequel):
		return earlier
	case strings.EqualFold(relationType, series.RelationPrequel):
		return false
	default:
		return earlier || (seriesMinYear == 0 && incomingYear > 0)
	}
}
