package checkpoint

import (
	"slices"
	"time"
)

// State is the in-memory view of a checkpoint file.
type State struct {
	// Cursor is the next catalog page to fetch. Pages start at 1.
	Cursor    int
	UpdatedAt time.Time

	processed map[int64]struct{}
	failed    map[int64]struct{}
}

// NewState returns an empty state positioned at the first page.
func NewState() *State {
	return &State{
		Cursor:    1,
		processed: make(map[int64]struct{}),
		failed:    make(map[int64]struct{}),
	}
}

// IsProcessed reports whether id finished in an earlier record outcome.
func (s *State) IsProcessed(id int64) bool {
	_, ok := s.processed[id]
	return ok
}

// IsFailed reports whether the catalog could not supply id.
func (s *State) IsFailed(id int64) bool {
	_, ok := s.failed[id]
	return ok
}

// ShouldSkip reports whether a run must not touch id again.
func (s *State) ShouldSkip(id int64) bool {
	return s.IsProcessed(id) || s.IsFailed(id)
}

// MarkProcessed records id as processed and clears any earlier failure.
func (s *State) MarkProcessed(id int64) {
	s.processed[id] = struct{}{}
	delete(s.failed, id)
}

// MarkFailed records that the catalog could not supply id.
func (s *State) MarkFailed(id int64) {
	if s.IsProcessed(id) {
		return
	}
	s.failed[id] = struct{}{}
}

// ClearFailed forgets every failed id so the next run retries them.
func (s *State) ClearFailed() int {
	n := len(s.failed)
	s.failed = make(map[int64]struct{})
	return n
}

// Processed returns the processed ids in ascending order.
func (s *State) Processed() []int64 { return sortedKeys(s.processed) }

// Failed returns the failed ids in ascending order.
func (s *State) Failed() []int64 { return sortedKeys(s.failed) }

// ProcessedCount returns the number of processed ids.
func (s *State) ProcessedCount() int { return len(s.processed) }

// FailedCount returns the number of failed ids.
func (s *State) FailedCount() int { return len(s.failed) }

func sortedKeys(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
