package consolidation

import "time"

// Outcome is the terminal state of one record.
type Outcome string

const (
	OutcomeLinked   Outcome = "linked"
	OutcomeUnlinked Outcome = "unlinked"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// Resolution methods reported on Result.Method.
const (
	MethodExisting       = "existing"
	MethodRelationship   = "relationship"
	MethodSimilarity     = "similarity"
	MethodDisambiguation = "disambiguation"
	MethodPartial        = "partial_match"
	MethodNew            = "new_series"
)

// Per-record stages, attached to the context for logging.
const (
	StageFetch               = "fetch"
	StageStore               = "store"
	StageResolveRelationship = "resolve_relationship"
	StageResolveSimilarity   = "resolve_similarity"
	StageMutate              = "mutate"
	StageCheckpoint          = "checkpoint"
)

// Result describes what happened to one record.
type Result struct {
	ExternalID int64
	Title      string
	Outcome    Outcome
	Method     string
	SeriesID   int64
	Renamed    bool
	Err        error
}

// Summary aggregates one run.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Cursor     int
	Exhausted  bool
	Linked     int
	Unlinked   int
	Skipped    int
	Failed     int
	Created    int
	Renamed    int
}

// Processed counts records that reached a terminal outcome other than skipped.
func (s Summary) Processed() int {
	return s.Linked + s.Unlinked + s.Failed
}

func (s *Summary) add(res Result) {
	switch res.Outcome {
	case OutcomeLinked:
		s.Linked++
		if res.Method == MethodNew {
			s.Created++
		}
		if res.Renamed {
			s.Renamed++
		}
	case OutcomeUnlinked:
		s.Unlinked++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}
