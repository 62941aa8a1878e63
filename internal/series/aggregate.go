package series

import (
	"cmp"
	"slices"

	"animeseries/internal/catalog"
	"animeseries/internal/store"
)

// Recompute rebuilds every aggregate field of series from members. Years,
// scores and popularity of zero are treated as unknown.
func Recompute(series *store.Series, members []*store.Anime) {
	if series == nil {
		return
	}
	series.StartYear = 0
	series.EndYear = 0
	series.TotalEpisodes = 0
	series.AverageScore = 0
	series.Popularity = 0

	var (
		scoreSum, popularitySum float64
		scoreCount, popCount    int
		airing, finished        bool
	)
	for _, member := range members {
		if member == nil {
			continue
		}
		if member.Year > 0 {
			if series.StartYear == 0 || member.Year < series.StartYear {
				series.StartYear = member.Year
			}
			if member.Year > series.EndYear {
				series.EndYear = member.Year
			}
		}
		series.TotalEpisodes += member.Episodes
		if member.Score > 0 {
			scoreSum += member.Score
			scoreCount++
		}
		if member.Popularity > 0 {
			popularitySum += float64(member.Popularity)
			popCount++
		}
		switch member.Status {
		case catalog.StatusAiring:
			airing = true
		case catalog.StatusFinished:
			finished = true
		}
		if series.Description == "" {
			series.Description = member.Synopsis
		}
		if series.ImageURL == "" {
			series.ImageURL = member.ImageURL
		}
	}
	if scoreCount > 0 {
		series.AverageScore = scoreSum / float64(scoreCount)
	}
	if popCount > 0 {
		series.Popularity = popularitySum / float64(popCount)
	}
	switch {
	case airing:
		series.Status = store.SeriesStatusOngoing
	case finished:
		series.Status = store.SeriesStatusCompleted
	default:
		series.Status = store.SeriesStatusUpcoming
	}
}

// OrderMembers sorts members by year, unknown years last, then external id.
func OrderMembers(members []*store.Anime) []*store.Anime {
	ordered := slices.Clone(members)
	slices.SortStableFunc(ordered, func(a, b *store.Anime) int {
		ay, by := a.Year, b.Year
		switch {
		case ay == by:
			return cmp.Compare(a.ExternalID, b.ExternalID)
		case ay == 0:
			return 1
		case by == 0:
			return -1
		default:
			return cmp.Compare(ay, by)
		}
	})
	return ordered
}
