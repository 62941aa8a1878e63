package catalog

import "strings"

// Catalog status values carried on Record.Status.
const (
	StatusAiring   = "airing"
	StatusFinished = "finished"
	StatusUpcoming = "upcoming"
)

// Relation groups the related external ids of one relation type, in catalog order.
type Relation struct {
	Type        string
	ExternalIDs []int64
}

// ThemeSong is a parsed opening or ending theme.
type ThemeSong struct {
	Kind     string
	Sequence int
	Title    string
	Artist   string
	Episodes string
}

// Theme song kinds.
const (
	ThemeOpening = "opening"
	ThemeEnding  = "ending"
)

// Record is a single anime entry as consolidation sees it. Unknown numeric
// values are zero.
type Record struct {
	ExternalID    int64
	Title         string
	TitleEnglish  string
	TitleJapanese string
	Synopsis      string
	Type          string
	Status        string
	Episodes      int
	Year          int
	Score         float64
	Popularity    int
	ImageURL      string
	Relations     []Relation
	Themes        []ThemeSong
}

// Page is one page of a catalog listing.
type Page struct {
	Number     int
	Records    []Record
	TotalPages int
	HasNext    bool
}

type animeEnvelope struct {
	Data animePayload `json:"data"`
}

type listEnvelope struct {
	Data       []animePayload `json:"data"`
	Pagination struct {
		LastVisiblePage int  `json:"last_visible_page"`
		HasNextPage     bool `json:"has_next_page"`
	} `json:"pagination"`
}

type animePayload struct {
	MalID         int64    `json:"mal_id"`
	Title         string   `json:"title"`
	TitleEnglish  *string  `json:"title_english"`
	TitleJapanese *string  `json:"title_japanese"`
	Type          *string  `json:"type"`
	Episodes      *int     `json:"episodes"`
	Status        string   `json:"status"`
	Score         *float64 `json:"score"`
	Popularity    *int     `json:"popularity"`
	Synopsis      *string  `json:"synopsis"`
	Year          *int     `json:"year"`
	Aired         struct {
		Prop struct {
			From struct {
				Year *int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"aired"`
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Relations []struct {
		Relation string `json:"relation"`
		Entry    []struct {
			MalID int64  `json:"mal_id"`
			Type  string `json:"type"`
			Name  string `json:"name"`
		} `json:"entry"`
	} `json:"relations"`
	Theme struct {
		Openings []string `json:"openings"`
		Endings  []string `json:"endings"`
	} `json:"theme"`
}

func (p animePayload) toRecord() Record {
	rec := Record{
		ExternalID:    p.MalID,
		Title:         strings.TrimSpace(p.Title),
		TitleEnglish:  deref(p.TitleEnglish),
		TitleJapanese: deref(p.TitleJapanese),
		Synopsis:      deref(p.Synopsis),
		Type:          deref(p.Type),
		Status:        mapStatus(p.Status),
		ImageURL:      strings.TrimSpace(p.Images.JPG.ImageURL),
	}
	if p.Episodes != nil {
		rec.Episodes = *p.Episodes
	}
	if p.Score != nil {
		rec.Score = *p.Score
	}
	if p.Popularity != nil {
		rec.Popularity = *p.Popularity
	}
	switch {
	case p.Year != nil && *p.Year > 0:
		rec.Year = *p.Year
	case p.Aired.Prop.From.Year != nil:
		rec.Year = *p.Aired.Prop.From.Year
	}
	for _, rel := range p.Relations {
		group := Relation{Type: strings.TrimSpace(rel.Relation)}
		for _, entry := range rel.Entry {
			if !strings.EqualFold(entry.Type, "anime") || entry.MalID <= 0 {
				continue
			}
			group.ExternalIDs = append(group.ExternalIDs, entry.MalID)
		}
		if group.Type != "" && len(group.ExternalIDs) > 0 {
			rec.Relations = append(rec.Relations, group)
		}
	}
	for i, raw := range p.Theme.Openings {
		if song, ok := ParseThemeSong(ThemeOpening, i+1, raw); ok {
			rec.Themes = append(rec.Themes, song)
		}
	}
	for i, raw := range p.Theme.Endings {
		if song, ok := ParseThemeSong(ThemeEnding, i+1, raw); ok {
			rec.Themes = append(rec.Themes, song)
		}
	}
	return rec
}

func mapStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "currently airing":
		return StatusAiring
	case "finished airing":
		return StatusFinished
	case "not yet aired":
		return StatusUpcoming
	default:
		return ""
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
