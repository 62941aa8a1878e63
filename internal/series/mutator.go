package series

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"animeseries/internal/logging"
	"animeseries/internal/services"
	"animeseries/internal/store"
	"animeseries/internal/textutil"
)

// Repository is the store surface the mutator writes through. Each mutation
// runs inside WithTx, and calls made with the context it hands to fn must
// join the same transaction.
type Repository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateSeries(ctx context.Context, series *store.Series) error
	UpdateSeries(ctx context.Context, series *store.Series) error
	FindSeriesByID(ctx context.Context, id int64) (*store.Series, error)
	LinkAnimeToSeries(ctx context.Context, animeID, seriesID int64, seriesType string, seriesOrder int) error
	ListAnimeBySeries(ctx context.Context, seriesID int64) ([]*store.Anime, error)
}

// Mutator creates series and attaches anime to them.
type Mutator struct {
	repo   Repository
	logger *slog.Logger
}

// NewMutator constructs a Mutator.
func NewMutator(repo Repository, logger *slog.Logger) *Mutator {
	return &Mutator{repo: repo, logger: logging.NewComponentLogger(logger, "series")}
}

// Create seeds a new series from anime and links anime as its first member.
// The anime must already be stored.
func (m *Mutator) Create(ctx context.Context, anime *store.Anime) (*store.Series, error) {
	if anime == nil || anime.ID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "series", "create", "stored anime required", nil)
	}
	seriesType := DetectType(anime)
	title := strings.TrimSpace(anime.Title)
	if seriesType != TypeMain {
		if stripped := textutil.StripSeriesSuffixes(title); stripped != "" {
			title = stripped
		}
	}

	created := &store.Series{
		Title:         title,
		TitleEnglish:  anime.TitleEnglish,
		TitleJapanese: anime.TitleJapanese,
		IsMainEntry:   IsMainEntry(seriesType),
	}
	Recompute(created, []*store.Anime{anime})
	err := m.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := m.repo.CreateSeries(ctx, created); err != nil {
			return err
		}
		return m.repo.LinkAnimeToSeries(ctx, anime.ID, created.ID, seriesType, 1)
	})
	if err != nil {
		return nil, err
	}
	anime.SeriesID = created.ID
	anime.SeriesType = seriesType
	anime.SeriesOrder = 1

	logging.WithContext(ctx, m.logger).Info("series created",
		logging.Int64(logging.FieldSeriesID, created.ID),
		logging.String("title", created.Title),
		logging.String("series_type", seriesType),
		logging.Bool("main_entry", created.IsMainEntry))
	return created, nil
}

// Attach links anime to the series, optionally renaming the series to the
// anime's title, and recomputes aggregates and member order.
func (m *Mutator) Attach(ctx context.Context, seriesID int64, anime *store.Anime, rename bool) (*store.Series, error) {
	if anime == nil || anime.ID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "series", "attach", "stored anime required", nil)
	}
	seriesType := DetectType(anime)
	var (
		target   *store.Series
		members  []*store.Anime
		order    int
		previous string
	)
	err := m.repo.WithTx(ctx, func(ctx context.Context) error {
		found, err := m.repo.FindSeriesByID(ctx, seriesID)
		if err != nil {
			return err
		}
		if found == nil {
			return services.Wrap(services.ErrNotFound, "series", "attach", fmt.Sprintf("series %d", seriesID), nil)
		}
		if err := m.repo.LinkAnimeToSeries(ctx, anime.ID, seriesID, seriesType, 0); err != nil {
			return err
		}

		if rename {
			previous = found.Title
			found.Title = strings.TrimSpace(anime.Title)
			if anime.TitleEnglish != "" {
				found.TitleEnglish = anime.TitleEnglish
			}
			if anime.TitleJapanese != "" {
				found.TitleJapanese = anime.TitleJapanese
			}
		}

		listed, err := m.repo.ListAnimeBySeries(ctx, seriesID)
		if err != nil {
			return err
		}
		Recompute(found, listed)
		for i, member := range OrderMembers(listed) {
			if member.ID == anime.ID {
				order = i + 1
			}
			if member.SeriesOrder == i+1 {
				continue
			}
			if err := m.repo.LinkAnimeToSeries(ctx, member.ID, seriesID, member.SeriesType, i+1); err != nil {
				return err
			}
		}
		if err := m.repo.UpdateSeries(ctx, found); err != nil {
			return err
		}
		target, members = found, listed
		return nil
	})
	if err != nil {
		return nil, err
	}
	anime.SeriesID = seriesID
	anime.SeriesType = seriesType
	anime.SeriesOrder = order

	attrs := []logging.Attr{
		logging.Int64(logging.FieldSeriesID, seriesID),
		logging.String("title", target.Title),
		logging.Int("members", len(members)),
		logging.Int("total_episodes", target.TotalEpisodes),
	}
	if rename && previous != target.Title {
		attrs = append(attrs, logging.String("previous_title", previous))
	}
	logging.WithContext(ctx, m.logger).Info("anime attached to series", logging.Args(attrs...)...)
	return target, nil
}
