package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateAnime inserts anime together with its relation edges and theme
// songs, and assigns its ID and timestamps. A second record with the same
// external id is rejected.
func (s *Store) CreateAnime(ctx context.Context, anime *Anime) error {
	if anime == nil || anime.ExternalID <= 0 {
		return persistenceError("create anime", "external id required", nil)
	}
	if strings.TrimSpace(anime.Title) == "" {
		return persistenceError("create anime", fmt.Sprintf("external id %d: title required", anime.ExternalID), nil)
	}
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO anime (external_id, title, title_english, title_japanese, synopsis, catalog_type, status,
				episodes, year, score, popularity, image_url, series_id, series_type, series_order, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			anime.ExternalID,
			anime.Title,
			nullableString(anime.TitleEnglish),
			nullableString(anime.TitleJapanese),
			nullableString(anime.Synopsis),
			nullableString(anime.CatalogType),
			nullableString(anime.Status),
			nullableInt(anime.Episodes),
			nullableInt(anime.Year),
			nullableFloat(anime.Score),
			nullableInt(anime.Popularity),
			nullableString(anime.ImageURL),
			nullableID(anime.SeriesID),
			nullableString(anime.SeriesType),
			nullableInt(anime.SeriesOrder),
			formatTime(now),
			formatTime(now),
		)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		for pos, rel := range anime.Relations {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO anime_relations (anime_id, position, relation_type, related_external_id) VALUES (?, ?, ?, ?)`,
				id, pos, rel.Type, rel.RelatedExternalID,
			); err != nil {
				return fmt.Errorf("insert relation: %w", err)
			}
		}
		for pos, song := range anime.Themes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO theme_songs (anime_id, position, kind, sequence, title, artist, episodes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, pos, song.Kind, song.Sequence, song.Title, nullableString(song.Artist), nullableString(song.Episodes),
			); err != nil {
				return fmt.Errorf("insert theme song: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return persistenceError("create anime", fmt.Sprintf("external id %d", anime.ExternalID), err)
	}
	anime.ID = id
	anime.CreatedAt = now
	anime.UpdatedAt = now
	return nil
}

// LinkAnimeToSeries records series membership together with the member's
// derived type and order. Calling it again for the same series only updates
// the type and order.
func (s *Store) LinkAnimeToSeries(ctx context.Context, animeID, seriesID int64, seriesType string, seriesOrder int) error {
	if animeID <= 0 || seriesID <= 0 {
		return persistenceError("link anime", "anime and series ids required", nil)
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE anime SET series_id = ?, series_type = ?, series_order = ?, updated_at = ?
		 WHERE id = ? AND (series_id IS NULL OR series_id = ?)`,
		seriesID, nullableString(seriesType), nullableInt(seriesOrder), formatTime(time.Now().UTC()), animeID, seriesID,
	)
	if err != nil {
		return persistenceError("link anime", fmt.Sprintf("anime %d to series %d", animeID, seriesID), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistenceError("link anime", "rows affected", err)
	}
	if affected == 0 {
		return persistenceError("link anime", fmt.Sprintf("anime %d missing or owned by another series", animeID), nil)
	}
	return nil
}

// FindAnimeByExternalID returns the anime with the catalog id, or nil when
// none is stored.
func (s *Store) FindAnimeByExternalID(ctx context.Context, externalID int64) (*Anime, error) {
	ctx = ensureContext(ctx)
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+animeColumns+` FROM anime WHERE external_id = ?`, externalID)
	anime, err := scanAnime(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("find anime", fmt.Sprintf("external id %d", externalID), err)
	}
	if err := s.loadChildren(ctx, []*Anime{anime}); err != nil {
		return nil, err
	}
	return anime, nil
}

// ListAnimeBySeries returns the members of a series ordered by series order,
// then year, then external id.
func (s *Store) ListAnimeBySeries(ctx context.Context, seriesID int64) ([]*Anime, error) {
	return s.queryAnime(ctx, "list anime by series",
		`SELECT `+animeColumns+` FROM anime WHERE series_id = ?
		 ORDER BY COALESCE(series_order, 0), COALESCE(year, 0), external_id`, seriesID)
}

// ListUnlinkedAnime returns stored anime that do not belong to any series.
func (s *Store) ListUnlinkedAnime(ctx context.Context) ([]*Anime, error) {
	return s.queryAnime(ctx, "list unlinked anime",
		`SELECT `+animeColumns+` FROM anime WHERE series_id IS NULL ORDER BY external_id`)
}

func (s *Store) queryAnime(ctx context.Context, operation, query string, args ...any) ([]*Anime, error) {
	ctx = ensureContext(ctx)
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(operation, "", err)
	}
	var out []*Anime
	for rows.Next() {
		anime, err := scanAnime(rows)
		if err != nil {
			rows.Close()
			return nil, persistenceError(operation, "scan", err)
		}
		out = append(out, anime)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, persistenceError(operation, "", err)
	}
	if err := s.loadChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadChildren fills relation edges and theme songs. It runs after the parent
// rows are closed because the store holds a single connection.
func (s *Store) loadChildren(ctx context.Context, anime []*Anime) error {
	for _, a := range anime {
		relations, err := s.loadRelations(ctx, a.ID)
		if err != nil {
			return err
		}
		a.Relations = relations
		themes, err := s.loadThemes(ctx, a.ID)
		if err != nil {
			return err
		}
		a.Themes = themes
	}
	return nil
}

func (s *Store) loadRelations(ctx context.Context, animeID int64) ([]Relation, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT relation_type, related_external_id FROM anime_relations WHERE anime_id = ? ORDER BY position`, animeID)
	if err != nil {
		return nil, persistenceError("load relations", fmt.Sprintf("anime %d", animeID), err)
	}
	defer rows.Close()
	var out []Relation
	for rows.Next() {
		var rel Relation
		if err := rows.Scan(&rel.Type, &rel.RelatedExternalID); err != nil {
			return nil, persistenceError("load relations", "scan", err)
		}
		out = append(out, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("load relations", "", err)
	}
	return out, nil
}

func (s *Store) loadThemes(ctx context.Context, animeID int64) ([]ThemeSong, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT kind, sequence, title, artist, episodes FROM theme_songs WHERE anime_id = ? ORDER BY position`, animeID)
	if err != nil {
		return nil, persistenceError("load themes", fmt.Sprintf("anime %d", animeID), err)
	}
	defer rows.Close()
	var out []ThemeSong
	for rows.Next() {
		var (
			song     ThemeSong
			artist   sql.NullString
			episodes sql.NullString
		)
		if err := rows.Scan(&song.Kind, &song.Sequence, &song.Title, &artist, &episodes); err != nil {
			return nil, persistenceError("load themes", "scan", err)
		}
		song.Artist = artist.String
		song.Episodes = episodes.String
		out = append(out, song)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("load themes", "", err)
	}
	return out, nil
}
