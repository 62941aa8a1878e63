package series

import (
	"strings"

	"animeseries/internal/catalog"
	"animeseries/internal/store"
)

// Series member types.
const (
	TypeMain      = "main"
	TypeSequel    = "sequel"
	TypeMovie     = "movie"
	TypeOVA       = "ova"
	TypeSpecial   = "special"
	TypeSideStory = "side_story"
)

// Relation types with dedicated handling.
const (
	RelationSequel             = "Sequel"
	RelationPrequel            = "Prequel"
	RelationAlternativeVersion = "Alternative Version"
	RelationSideStory          = "Side Story"
)

var titleKeywords = []struct {
	keyword string
	kind    string
}{
	{"gekijouban", TypeMovie},
	{"movie", TypeMovie},
	{"ova", TypeOVA},
	{"oad", TypeOVA},
	{"special", TypeSpecial},
	{"side story", TypeSideStory},
	{"gaiden", TypeSideStory},
}

// DetectType classifies an anime from its catalog type, title keywords and
// sequel/prequel edges.
func DetectType(anime *store.Anime) string {
	if anime == nil {
		return TypeMain
	}
	switch strings.ToLower(strings.TrimSpace(anime.CatalogType)) {
	case "movie":
		return TypeMovie
	case "ova":
		return TypeOVA
	case "special", "tv special", "tv_special":
		return TypeSpecial
	}

	words := " " + strings.Join(strings.Fields(strings.ToLower(anime.Title)), " ") + " "
	for _, kw := range titleKeywords {
		if strings.Contains(words, " "+kw.keyword+" ") {
			return kw.kind
		}
	}

	if hasRelation(anime.Relations, RelationSequel) && !hasRelation(anime.Relations, RelationPrequel) {
		return TypeSequel
	}
	return TypeMain
}

// IsMainEntry reports whether a series seeded by this type counts as a main entry.
func IsMainEntry(seriesType string) bool {
	return seriesType == TypeMain || seriesType == TypeSequel
}

func hasRelation(relations []store.Relation, relationType string) bool {
	for _, rel := range relations {
		if strings.EqualFold(rel.Type, relationType) {
			return true
		}
	}
	return false
}

// FromRecord converts a catalog record into an unsaved anime. Relation groups
// are flattened in catalog order.
func FromRecord(rec *catalog.Record) *store.Anime {
	if rec == nil {
		return nil
	}
	anime := &store.Anime{
		ExternalID:    rec.ExternalID,
		Title:         strings.TrimSpace(rec.Title),
		TitleEnglish:  strings.TrimSpace(rec.TitleEnglish),
		TitleJapanese: strings.TrimSpace(rec.TitleJapanese),
		Synopsis:      strings.TrimSpace(rec.Synopsis),
		CatalogType:   rec.Type,
		Status:        rec.Status,
		Episodes:      rec.Episodes,
		Year:          rec.Year,
		Score:         rec.Score,
		Popularity:    rec.Popularity,
		ImageURL:      rec.ImageURL,
	}
	for _, group := range rec.Relations {
		for _, id := range group.ExternalIDs {
			anime.Relations = append(anime.Relations, store.Relation{Type: group.Type, RelatedExternalID: id})
		}
	}
	for _, song := range rec.Themes {
		anime.Themes = append(anime.Themes, store.ThemeSong{
			Kind:     song.Kind,
			Sequence: song.Sequence,
			Title:    song.Title,
			Artist:   song.Artist,
			Episodes: song.Episodes,
		})
	}
	anime.SeriesType = DetectType(anime)
	return anime
}
