package testsupport

import (
	"context"
	"testing"

	"animeseries/internal/config"
	"animeseries/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustCreateSeries inserts a series for tests.
func MustCreateSeries(t testing.TB, st *store.Store, series *store.Series) *store.Series {
	t.Helper()

	if err := st.CreateSeries(context.Background(), series); err != nil {
		t.Fatalf("store.CreateSeries: %v", err)
	}
	return series
}

// MustCreateAnime inserts an anime and, when seriesID is non-zero, links it.
func MustCreateAnime(t testing.TB, st *store.Store, anime *store.Anime, seriesID int64) *store.Anime {
	t.Helper()

	ctx := context.Background()
	if err := st.CreateAnime(ctx, anime); err != nil {
		t.Fatalf("store.CreateAnime: %v", err)
	}
	if seriesID > 0 {
		order := anime.SeriesOrder
		if order == 0 {
			order = 1
		}
		if err := st.LinkAnimeToSeries(ctx, anime.ID, seriesID, anime.SeriesType, order); err != nil {
			t.Fatalf("store.LinkAnimeToSeries: %v", err)
		}
		anime.SeriesID = seriesID
		anime.SeriesOrder = order
	}
	return anime
}
