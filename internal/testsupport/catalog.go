package testsupport

import (
	"context"
	"fmt"
	"sync"

	"animeseries/internal/catalog"
	"animeseries/internal/services"
)

// RecordOption customizes a catalog record built by Record.
type RecordOption func(*catalog.Record)

// Record builds a finished TV catalog record.
func Record(id int64, title string, year int, opts ...RecordOption) catalog.Record {
	rec := catalog.Record{
		ExternalID: id,
		Title:      title,
		Type:       "TV",
		Status:     catalog.StatusFinished,
		Year:       year,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// WithRelation appends a relation group.
func WithRelation(relationType string, ids ...int64) RecordOption {
	return func(r *catalog.Record) {
		r.Relations = append(r.Relations, catalog.Relation{Type: relationType, ExternalIDs: ids})
	}
}

// WithCatalogType sets the catalog format (TV, Movie, OVA, ...).
func WithCatalogType(kind string) RecordOption {
	return func(r *catalog.Record) { r.Type = kind }
}

// WithStatus sets the catalog status.
func WithStatus(status string) RecordOption {
	return func(r *catalog.Record) { r.Status = status }
}

// WithNumbers sets episodes, score and popularity.
func WithNumbers(episodes int, score float64, popularity int) RecordOption {
	return func(r *catalog.Record) {
		r.Episodes = episodes
		r.Score = score
		r.Popularity = popularity
	}
}

// WithThemes attaches theme songs.
func WithThemes(songs ...catalog.ThemeSong) RecordOption {
	return func(r *catalog.Record) { r.Themes = append(r.Themes, songs...) }
}

// FakeCatalog serves records and pages from memory.
type FakeCatalog struct {
	mu          sync.Mutex
	records     map[int64]catalog.Record
	pages       [][]int64
	recordErrs  map[int64]error
	pageErrs    map[int]error
	recordCalls []int64
	pageCalls   []int
}

// NewFakeCatalog returns a FakeCatalog holding records.
func NewFakeCatalog(records ...catalog.Record) *FakeCatalog {
	f := &FakeCatalog{
		records:    make(map[int64]catalog.Record),
		recordErrs: make(map[int64]error),
		pageErrs:   make(map[int]error),
	}
	for _, rec := range records {
		f.records[rec.ExternalID] = rec
	}
	return f
}

// Add stores additional records.
func (f *FakeCatalog) Add(records ...catalog.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		f.records[rec.ExternalID] = rec
	}
}

// SetPages defines the listing; pages[0] is page 1.
func (f *FakeCatalog) SetPages(pages ...[]int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = pages
}

// FailRecord makes FetchRecord return err for id.
func (f *FakeCatalog) FailRecord(id int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordErrs[id] = err
}

// FailPage makes FetchPage return err for page.
func (f *FakeCatalog) FailPage(page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageErrs[page] = err
}

// RecordCalls returns the ids requested so far, in order.
func (f *FakeCatalog) RecordCalls() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.recordCalls...)
}

// PageCalls returns the pages requested so far, in order.
func (f *FakeCatalog) PageCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pageCalls...)
}

// FetchRecord implements the consolidation catalog contract.
func (f *FakeCatalog) FetchRecord(ctx context.Context, id int64) (*catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordCalls = append(f.recordCalls, id)
	if err := f.recordErrs[id]; err != nil {
		return nil, err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "fetch record", fmt.Sprintf("id %d", id), catalog.ErrNotFound)
	}
	return &rec, nil
}

// FetchPage implements the consolidation catalog contract. Pages past the
// end are empty and report no next page.
func (f *FakeCatalog) FetchPage(ctx context.Context, page int) (*catalog.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls = append(f.pageCalls, page)
	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	result := &catalog.Page{Number: page, TotalPages: len(f.pages), HasNext: page < len(f.pages)}
	if page < 1 || page > len(f.pages) {
		return result, nil
	}
	for _, id := range f.pages[page-1] {
		rec, ok := f.records[id]
		if !ok {
			rec = catalog.Record{ExternalID: id}
		}
		result.Records = append(result.Records, catalog.Record{ExternalID: rec.ExternalID, Title: rec.Title})
	}
	return result, nil
}
