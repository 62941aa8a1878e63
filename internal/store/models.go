package store

import "time"

// Series aggregate status values.
const (
	SeriesStatusOngoing   = "ongoing"
	SeriesStatusCompleted = "completed"
	SeriesStatusUpcoming  = "upcoming"
)

// Relation is one edge from an anime to another catalog id.
type Relation struct {
	Type              string
	RelatedExternalID int64
}

// ThemeSong is an opening or ending theme stored with its anime.
type ThemeSong struct {
	Kind     string
	Sequence int
	Title    string
	Artist   string
	Episodes string
}

// Anime is a stored catalog record. Numeric fields use 0 for unknown values
// and SeriesID is 0 while the record is unlinked.
type Anime struct {
	ID            int64
	ExternalID    int64
	Title         string
	TitleEnglish  string
	TitleJapanese string
	Synopsis      string
	CatalogType   string
	Status        string
	Episodes      int
	Year          int
	Score         float64
	Popularity    int
	ImageURL      string
	Relations     []Relation
	Themes        []ThemeSong
	SeriesID      int64
	SeriesType    string
	SeriesOrder   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Linked reports whether the anime belongs to a series.
func (a *Anime) Linked() bool {
	return a != nil && a.SeriesID > 0
}

// Series groups related anime under one canonical title. Aggregate fields use
// 0 when no member carries a value.
type Series struct {
	ID            int64
	Title         string
	TitleEnglish  string
	TitleJapanese string
	Description   string
	ImageURL      string
	Status        string
	StartYear     int
	EndYear       int
	TotalEpisodes int
	AverageScore  float64
	Popularity    float64
	IsMainEntry   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Stats summarizes store contents for status output.
type Stats struct {
	Series        int
	Anime         int
	LinkedAnime   int
	UnlinkedAnime int
}
