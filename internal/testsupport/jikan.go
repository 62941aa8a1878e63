package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"animeseries/internal/catalog"
)

// JikanServer serves catalog records over HTTP in the Jikan v4 shape.
type JikanServer struct {
	*httptest.Server

	mu      sync.Mutex
	records map[int64]catalog.Record
	pages   [][]int64
	hits    map[string]int
}

// NewJikanServer starts a server holding records, closed on test cleanup.
func NewJikanServer(t testing.TB, records ...catalog.Record) *JikanServer {
	t.Helper()
	js := &JikanServer{records: make(map[int64]catalog.Record), hits: make(map[string]int)}
	for _, rec := range records {
		js.records[rec.ExternalID] = rec
	}
	js.Server = httptest.NewServer(http.HandlerFunc(js.handle))
	t.Cleanup(js.Close)
	return js
}

// SetPages defines the /top/anime listing; pages[0] is page 1.
func (js *JikanServer) SetPages(pages ...[]int64) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.pages = pages
}

// Hits returns how often path was requested.
func (js *JikanServer) Hits(path string) int {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.hits[path]
}

func (js *JikanServer) handle(w http.ResponseWriter, r *http.Request) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.hits[r.URL.Path]++

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/top/anime" || r.URL.Path == "/anime":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		js.writeList(w, page)
	case strings.HasPrefix(r.URL.Path, "/anime/") && strings.HasSuffix(r.URL.Path, "/full"):
		raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/anime/"), "/full")
		id, err := strconv.ParseInt(raw, 10, 64)
		rec, ok := js.records[id]
		if err != nil || !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"type":"BadResponseException","message":"Resource does not exist"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": jikanPayload(rec)})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (js *JikanServer) writeList(w http.ResponseWriter, page int) {
	data := []map[string]any{}
	if page <= len(js.pages) {
		for _, id := range js.pages[page-1] {
			data = append(data, map[string]any{"mal_id": id, "title": js.records[id].Title})
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"pagination": map[string]any{
			"last_visible_page": len(js.pages),
			"has_next_page":     page < len(js.pages),
		},
	})
}

func jikanPayload(rec catalog.Record) map[string]any {
	relations := make([]map[string]any, 0, len(rec.Relations))
	for _, rel := range rec.Relations {
		entries := make([]map[string]any, 0, len(rel.ExternalIDs))
		for _, id := range rel.ExternalIDs {
			entries = append(entries, map[string]any{"mal_id": id, "type": "anime", "name": ""})
		}
		relations = append(relations, map[string]any{"relation": rel.Type, "entry": entries})
	}
	openings := []string{}
	endings := []string{}
	for _, song := range rec.Themes {
		line := strconv.Itoa(song.Sequence) + `: "` + song.Title + `"`
		if song.Artist != "" {
			line += " by " + song.Artist
		}
		if song.Kind == catalog.ThemeEnding {
			endings = append(endings, line)
		} else {
			openings = append(openings, line)
		}
	}
	payload := map[string]any{
		"mal_id":         rec.ExternalID,
		"title":          rec.Title,
		"title_english":  nilIfEmpty(rec.TitleEnglish),
		"title_japanese": nilIfEmpty(rec.TitleJapanese),
		"type":           nilIfEmpty(rec.Type),
		"status":         jikanStatus(rec.Status),
		"synopsis":       nilIfEmpty(rec.Synopsis),
		"relations":      relations,
		"theme":          map[string]any{"openings": openings, "endings": endings},
		"images":         map[string]any{"jpg": map[string]any{"image_url": rec.ImageURL}},
	}
	if rec.Year > 0 {
		payload["year"] = rec.Year
	}
	if rec.Episodes > 0 {
		payload["episodes"] = rec.Episodes
	}
	if rec.Score > 0 {
		payload["score"] = rec.Score
	}
	if rec.Popularity > 0 {
		payload["popularity"] = rec.Popularity
	}
	return payload
}

func jikanStatus(status string) string {
	switch status {
	case catalog.StatusAiring:
		return "Currently Airing"
	case catalog.StatusUpcoming:
		return "Not yet aired"
	case catalog.StatusFinished:
		return "Finished Airing"
	default:
		return ""
	}
}

func nilIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
