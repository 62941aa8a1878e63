package checkpoint

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"animeseries/internal/logging"
	"animeseries/internal/services"
)

func TestLoadMissingFileStartsFresh(t *testing.T) {
	file := NewFile(filepath.Join(t.TempDir(), "checkpoint.json"), logging.NewNop())
	state, err := file.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if state.Cursor != 1 || state.ProcessedCount() != 0 || state.FailedCount() != 0 {
		t.Fatalf("unexpected fresh state: %+v", state)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "checkpoint.json")
	file := NewFile(path, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	file.now = func() time.Time { return fixed }

	state := NewState()
	state.Cursor = 4
	for _, id := range []int64{5114, 1, 16498} {
		state.MarkProcessed(id)
	}
	state.MarkFailed(99999)
	if err := file.Save(state); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err=%v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read checkpoint: %v", err)
	}
	if !strings.Contains(string(raw), `"cursor": 4`) {
		t.Fatalf("unexpected document: %s", raw)
	}

	loaded, err := NewFile(path, nil).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Cursor != 4 || !loaded.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected cursor/time: %+v", loaded)
	}
	if got := loaded.Processed(); !slices.Equal(got, []int64{1, 5114, 16498}) {
		t.Fatalf("processed ids = %v", got)
	}
	if !loaded.IsFailed(99999) || !loaded.ShouldSkip(99999) || loaded.ShouldSkip(2) {
		t.Fatalf("unexpected failed handling: %v", loaded.Failed())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewFile(path, nil).Load()
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}
}

func TestStateTransitions(t *testing.T) {
	state := NewState()
	state.MarkFailed(7)
	state.MarkProcessed(7)
	if state.IsFailed(7) || !state.IsProcessed(7) {
		t.Fatal("processing should clear an earlier failure")
	}
	state.MarkFailed(7)
	if state.IsFailed(7) {
		t.Fatal("a processed id must not become failed")
	}
	state.MarkFailed(8)
	state.MarkFailed(9)
	if n := state.ClearFailed(); n != 2 || state.FailedCount() != 0 {
		t.Fatalf("ClearFailed = %d, remaining %d", n, state.FailedCount())
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	file := NewFile(path, nil)
	if err := file.Save(NewState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := file.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := file.Remove(); err != nil {
		t.Fatalf("second Remove should be a no-op: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
}
