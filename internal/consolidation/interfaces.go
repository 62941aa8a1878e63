package consolidation

import (
	"context"

	"animeseries/internal/catalog"
	"animeseries/internal/checkpoint"
	"animeseries/internal/series"
	"animeseries/internal/store"
	"animeseries/internal/textutil"
)

// Catalog supplies records and listing pages.
type Catalog interface {
	FetchRecord(ctx context.Context, externalID int64) (*catalog.Record, error)
	FetchPage(ctx context.Context, page int) (*catalog.Page, error)
}

// Repository is the store surface consolidation reads and writes.
type Repository interface {
	series.Repository
	FindAnimeByExternalID(ctx context.Context, externalID int64) (*store.Anime, error)
	ListSeries(ctx context.Context) ([]*store.Series, error)
	CreateAnime(ctx context.Context, anime *store.Anime) error
}

// CheckpointStore persists run progress.
type CheckpointStore interface {
	Load() (*checkpoint.State, error)
	Save(state *checkpoint.State) error
}

// Scorer measures title similarity.
type Scorer interface {
	Overlap(a, b string) float64
	Containment(a, b string) (ratio float64, shorterWords int)
}

// TitleScorer scores titles with core-word overlap and word containment.
type TitleScorer struct{}

func (TitleScorer) Overlap(a, b string) float64 {
	return textutil.CoreOverlap(a, b)
}

func (TitleScorer) Containment(a, b string) (float64, int) {
	return textutil.WordContainment(a, b)
}
