package consolidation_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"animeseries/internal/catalog"
	"animeseries/internal/checkpoint"
	"animeseries/internal/consolidation"
	"animeseries/internal/disambiguation"
	"animeseries/internal/logging"
	"animeseries/internal/store"
	"animeseries/internal/testsupport"
)

// fixedScorer reports the same scores for every title pair.
type fixedScorer struct {
	overlap      float64
	containment  float64
	shorterWords int
}

func (s fixedScorer) Overlap(string, string) float64 { return s.overlap }

func (s fixedScorer) Containment(string, string) (float64, int) {
	return s.containment, s.shorterWords
}

// recordingDecider replays choices and keeps every menu it was shown.
type recordingDecider struct {
	mu      sync.Mutex
	choices []int
	menus   []disambiguation.Menu
}

func (d *recordingDecider) Choose(_ context.Context, menu disambiguation.Menu) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menus = append(d.menus, menu)
	if len(d.choices) == 0 {
		return disambiguation.ChoiceCreateNew, nil
	}
	choice := d.choices[0]
	d.choices = d.choices[1:]
	return choice, nil
}

func (d *recordingDecider) Menus() []disambiguation.Menu {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]disambiguation.Menu(nil), d.menus...)
}

type harness struct {
	store   *store.Store
	engine  *consolidation.Engine
	decider *recordingDecider
}

func newHarness(t *testing.T, opts ...consolidation.EngineOption) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	decider := &recordingDecider{}
	gate := disambiguation.NewGate(decider, logging.NewNop())
	return &harness{
		store:   st,
		engine:  consolidation.NewEngine(st, gate, logging.NewNop(), opts...),
		decider: decider,
	}
}

func (h *harness) process(t *testing.T, rec catalog.Record) consolidation.Result {
	t.Helper()
	res, err := h.engine.Process(context.Background(), &rec)
	if err != nil {
		t.Fatalf("Process(%d) returned error: %v", rec.ExternalID, err)
	}
	return res
}

func (h *harness) series(t *testing.T, id int64) *store.Series {
	t.Helper()
	got, err := h.store.FindSeriesByID(context.Background(), id)
	if err != nil || got == nil {
		t.Fatalf("FindSeriesByID(%d) = %v, %v", id, got, err)
	}
	return got
}

func (h *harness) seriesCount(t *testing.T) int {
	t.Helper()
	all, err := h.store.ListSeries(context.Background())
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	return len(all)
}

func newCheckpoint(t *testing.T) *checkpoint.File {
	t.Helper()
	return checkpoint.NewFile(filepath.Join(t.TempDir(), "checkpoint.json"), logging.NewNop())
}
