package series

import (
	"testing"

	"animeseries/internal/catalog"
	"animeseries/internal/store"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name  string
		anime store.Anime
		want  string
	}{
		{name: "movie format", anime: store.Anime{Title: "Your Name.", CatalogType: "Movie"}, want: TypeMovie},
		{name: "ova format", anime: store.Anime{Title: "Hellsing Ultimate", CatalogType: "OVA"}, want: TypeOVA},
		{name: "tv special format", anime: store.Anime{Title: "Bakemonogatari Recap", CatalogType: "TV Special"}, want: TypeSpecial},
		{name: "movie keyword", anime: store.Anime{Title: "Gekijouban Fate/stay night", CatalogType: "TV"}, want: TypeMovie},
		{name: "side story keyword", anime: store.Anime{Title: "Legend of the Galactic Heroes Gaiden", CatalogType: "TV"}, want: TypeSideStory},
		{name: "keyword requires whole word", anime: store.Anime{Title: "Nova Cleaners", CatalogType: "TV"}, want: TypeMain},
		{
			name: "sequel edge only",
			anime: store.Anime{Title: "Steins;Gate", CatalogType: "TV", Relations: []store.Relation{
				{Type: "Sequel", RelatedExternalID: 30484},
			}},
			want: TypeSequel,
		},
		{
			name: "sequel and prequel",
			anime: store.Anime{Title: "Attack on Titan Season 2", CatalogType: "TV", Relations: []store.Relation{
				{Type: "Prequel", RelatedExternalID: 16498},
				{Type: "Sequel", RelatedExternalID: 35760},
			}},
			want: TypeMain,
		},
		{name: "plain tv", anime: store.Anime{Title: "Cowboy Bebop", CatalogType: "TV"}, want: TypeMain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectType(&tt.anime); got != tt.want {
				t.Fatalf("DetectType(%q) = %q, want %q", tt.anime.Title, got, tt.want)
			}
		})
	}
}

func TestFromRecordFlattensRelationsInOrder(t *testing.T) {
	rec := &catalog.Record{
		ExternalID: 16498,
		Title:      "  Shingeki no Kyojin ",
		Type:       "TV",
		Year:       2013,
		Relations: []catalog.Relation{
			{Type: "Sequel", ExternalIDs: []int64{25777}},
			{Type: "Side Story", ExternalIDs: []int64{18397, 19285}},
		},
		Themes: []catalog.ThemeSong{{Kind: catalog.ThemeOpening, Sequence: 1, Title: "Guren no Yumiya", Artist: "Linked Horizon"}},
	}
	anime := FromRecord(rec)
	if anime.Title != "Shingeki no Kyojin" {
		t.Fatalf("title not trimmed: %q", anime.Title)
	}
	want := []store.Relation{
		{Type: "Sequel", RelatedExternalID: 25777},
		{Type: "Side Story", RelatedExternalID: 18397},
		{Type: "Side Story", RelatedExternalID: 19285},
	}
	if len(anime.Relations) != len(want) {
		t.Fatalf("relations = %+v", anime.Relations)
	}
	for i := range want {
		if anime.Relations[i] != want[i] {
			t.Fatalf("relation %d = %+v, want %+v", i, anime.Relations[i], want[i])
		}
	}
	if len(anime.Themes) != 1 || anime.Themes[0].Artist != "Linked Horizon" {
		t.Fatalf("themes = %+v", anime.Themes)
	}
	if anime.SeriesType != TypeSequel {
		t.Fatalf("series type = %q", anime.SeriesType)
	}
	if FromRecord(nil) != nil {
		t.Fatal("expected nil for nil record")
	}
}
