package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

const seriesColumns = "id, title, title_english, title_japanese, description, image_url, status, start_year, end_year, total_episodes, average_score, popularity, is_main_entry, created_at, updated_at"

const animeColumns = "id, external_id, title, title_english, title_japanese, synopsis, catalog_type, status, episodes, year, score, popularity, image_url, series_id, series_type, series_order, created_at, updated_at"

type scanner interface{ Scan(dest ...any) error }

func scanSeries(row scanner) (*Series, error) {
	var (
		series        Series
		titleEnglish  sql.NullString
		titleJapanese sql.NullString
		description   sql.NullString
		imageURL      sql.NullString
		startYear     sql.NullInt64
		endYear       sql.NullInt64
		averageScore  sql.NullFloat64
		popularity    sql.NullFloat64
		isMain        int
		createdRaw    string
		updatedRaw    string
	)
	if err := row.Scan(
		&series.ID,
		&series.Title,
		&titleEnglish,
		&titleJapanese,
		&description,
		&imageURL,
		&series.Status,
		&startYear,
		&endYear,
		&series.TotalEpisodes,
		&averageScore,
		&popularity,
		&isMain,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	series.TitleEnglish = titleEnglish.String
	series.TitleJapanese = titleJapanese.String
	series.Description = description.String
	series.ImageURL = imageURL.String
	series.StartYear = int(startYear.Int64)
	series.EndYear = int(endYear.Int64)
	series.AverageScore = averageScore.Float64
	series.Popularity = popularity.Float64
	series.IsMainEntry = isMain != 0
	if created, err := parseTimeString(createdRaw); err == nil {
		series.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		series.UpdatedAt = updated
	}
	return &series, nil
}

func scanAnime(row scanner) (*Anime, error) {
	var (
		anime         Anime
		titleEnglish  sql.NullString
		titleJapanese sql.NullString
		synopsis      sql.NullString
		catalogType   sql.NullString
		status        sql.NullString
		episodes      sql.NullInt64
		year          sql.NullInt64
		score         sql.NullFloat64
		popularity    sql.NullInt64
		imageURL      sql.NullString
		seriesID      sql.NullInt64
		seriesType    sql.NullString
		seriesOrder   sql.NullInt64
		createdRaw    string
		updatedRaw    string
	)
	if err := row.Scan(
		&anime.ID,
		&anime.ExternalID,
		&anime.Title,
		&titleEnglish,
		&titleJapanese,
		&synopsis,
		&catalogType,
		&status,
		&episodes,
		&year,
		&score,
		&popularity,
		&imageURL,
		&seriesID,
		&seriesType,
		&seriesOrder,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	anime.TitleEnglish = titleEnglish.String
	anime.TitleJapanese = titleJapanese.String
	anime.Synopsis = synopsis.String
	anime.CatalogType = catalogType.String
	anime.Status = status.String
	anime.Episodes = int(episodes.Int64)
	anime.Year = int(year.Int64)
	anime.Score = score.Float64
	anime.Popularity = int(popularity.Int64)
	anime.ImageURL = imageURL.String
	anime.SeriesID = seriesID.Int64
	anime.SeriesType = seriesType.String
	anime.SeriesOrder = int(seriesOrder.Int64)
	if created, err := parseTimeString(createdRaw); err == nil {
		anime.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		anime.UpdatedAt = updated
	}
	return &anime, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value <= 0 {
		return nil
	}
	return value
}

func nullableID(value int64) any {
	if value <= 0 {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value <= 0 {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}
