package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateSeries inserts series and assigns its ID and timestamps.
func (s *Store) CreateSeries(ctx context.Context, series *Series) error {
	if series == nil {
		return persistenceError("create series", "series required", nil)
	}
	if strings.TrimSpace(series.Title) == "" {
		return persistenceError("create series", "title required", nil)
	}
	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx,
		`INSERT INTO series (title, title_english, title_japanese, description, image_url, status,
			start_year, end_year, total_episodes, average_score, popularity, is_main_entry, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		series.Title,
		nullableString(series.TitleEnglish),
		nullableString(series.TitleJapanese),
		nullableString(series.Description),
		nullableString(series.ImageURL),
		seriesStatusOrDefault(series.Status),
		nullableInt(series.StartYear),
		nullableInt(series.EndYear),
		series.TotalEpisodes,
		nullableFloat(series.AverageScore),
		nullableFloat(series.Popularity),
		boolToInt(series.IsMainEntry),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return persistenceError("create series", series.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return persistenceError("create series", "read id", err)
	}
	series.ID = id
	series.Status = seriesStatusOrDefault(series.Status)
	series.CreatedAt = now
	series.UpdatedAt = now
	return nil
}

// UpdateSeries writes every mutable field of series.
func (s *Store) UpdateSeries(ctx context.Context, series *Series) error {
	if series == nil || series.ID <= 0 {
		return persistenceError("update series", "series id required", nil)
	}
	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx,
		`UPDATE series SET title = ?, title_english = ?, title_japanese = ?, description = ?, image_url = ?,
			status = ?, start_year = ?, end_year = ?, total_episodes = ?, average_score = ?, popularity = ?,
			is_main_entry = ?, updated_at = ?
		 WHERE id = ?`,
		series.Title,
		nullableString(series.TitleEnglish),
		nullableString(series.TitleJapanese),
		nullableString(series.Description),
		nullableString(series.ImageURL),
		seriesStatusOrDefault(series.Status),
		nullableInt(series.StartYear),
		nullableInt(series.EndYear),
		series.TotalEpisodes,
		nullableFloat(series.AverageScore),
		nullableFloat(series.Popularity),
		boolToInt(series.IsMainEntry),
		formatTime(now),
		series.ID,
	)
	if err != nil {
		return persistenceError("update series", fmt.Sprintf("id %d", series.ID), err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return persistenceError("update series", fmt.Sprintf("id %d does not exist", series.ID), nil)
	}
	series.UpdatedAt = now
	return nil
}

// FindSeriesByID returns the series with id, or nil when none exists.
func (s *Store) FindSeriesByID(ctx context.Context, id int64) (*Series, error) {
	ctx = ensureContext(ctx)
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("find series", fmt.Sprintf("id %d", id), err)
	}
	return series, nil
}

// FindSeriesByTitleContains returns series whose title contains fragment,
// ignoring ASCII case, ordered by id.
func (s *Store) FindSeriesByTitleContains(ctx context.Context, fragment string) ([]*Series, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}
	return s.querySeries(ctx, "find series by title",
		`SELECT `+seriesColumns+` FROM series WHERE title LIKE ? ESCAPE '\' OR title_english LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(fragment), likePattern(fragment))
}

// ListSeries returns every series ordered by id.
func (s *Store) ListSeries(ctx context.Context) ([]*Series, error) {
	return s.querySeries(ctx, "list series", `SELECT `+seriesColumns+` FROM series ORDER BY id`)
}

func (s *Store) querySeries(ctx context.Context, operation, query string, args ...any) ([]*Series, error) {
	ctx = ensureContext(ctx)
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(operation, "", err)
	}
	defer rows.Close()

	var out []*Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, persistenceError(operation, "scan", err)
		}
		out = append(out, series)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError(operation, "", err)
	}
	return out, nil
}

// Stats counts series and anime.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	ctx = ensureContext(ctx)
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT (SELECT COUNT(1) FROM series),
		        (SELECT COUNT(1) FROM anime),
		        (SELECT COUNT(1) FROM anime WHERE series_id IS NOT NULL)`)
	if err := row.Scan(&stats.Series, &stats.Anime, &stats.LinkedAnime); err != nil {
		return Stats{}, persistenceError("stats", "", err)
	}
	stats.UnlinkedAnime = stats.Anime - stats.LinkedAnime
	return stats, nil
}

func seriesStatusOrDefault(status string) string {
	switch status {
	case SeriesStatusOngoing, SeriesStatusCompleted, SeriesStatusUpcoming:
		return status
	default:
		return SeriesStatusUpcoming
	}
}
