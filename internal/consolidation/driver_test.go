package consolidation_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"animeseries/internal/consolidation"
	"animeseries/internal/logging"
	"animeseries/internal/services"
	"animeseries/internal/testsupport"
)

func catalogFixture() *testsupport.FakeCatalog {
	fake := testsupport.NewFakeCatalog(
		testsupport.Record(16498, "Attack on Titan", 2013),
		testsupport.Record(25777, "Attack on Titan Season 2", 2017, testsupport.WithRelation("Prequel", 16498)),
		testsupport.Record(1, "Cowboy Bebop", 1998),
		testsupport.Record(5, "Cowboy Bebop: Tengoku no Tobira", 2001,
			testsupport.WithCatalogType("Movie"), testsupport.WithRelation("Parent Story", 1)),
		testsupport.Record(6, "Trigun", 1998),
	)
	fake.SetPages([]int64{16498, 25777}, []int64{1, 5}, []int64{6})
	return fake
}

func TestDriverRunsAllPages(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	cp := newCheckpoint(t)
	driver := consolidation.NewDriver(fake, h.engine, cp, logging.NewNop())

	summary, err := driver.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Linked != 5 || summary.Created != 3 || summary.Pages != 3 || !summary.Exhausted {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected generated run id")
	}
	if h.seriesCount(t) != 3 {
		t.Fatalf("series count = %d", h.seriesCount(t))
	}

	state, err := cp.Load()
	if err != nil {
		t.Fatalf("Load checkpoint: %v", err)
	}
	if state.Cursor != 3 || state.ProcessedCount() != 5 {
		t.Fatalf("unexpected checkpoint cursor=%d processed=%v", state.Cursor, state.Processed())
	}
}

func TestDriverStopsAtTargetAndResumes(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	cp := newCheckpoint(t)

	first, err := consolidation.NewDriver(fake, h.engine, cp, nil).Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if first.Processed() != 3 || first.Exhausted {
		t.Fatalf("unexpected first summary %+v", first)
	}
	if got := fake.RecordCalls(); !slices.Equal(got, []int64{16498, 25777, 1}) {
		t.Fatalf("first run fetched %v", got)
	}

	second, err := consolidation.NewDriver(fake, h.engine, cp, nil).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if second.Skipped != 1 || second.Linked != 2 {
		t.Fatalf("unexpected second summary %+v", second)
	}
	if got := fake.RecordCalls()[3:]; !slices.Equal(got, []int64{5, 6}) {
		t.Fatalf("second run fetched %v, processed records must not be refetched", got)
	}
	if got := fake.PageCalls(); !slices.Equal(got, []int{1, 2, 2, 3}) {
		t.Fatalf("page calls = %v", got)
	}
}

func TestDriverRerunIsIdempotent(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	cp := newCheckpoint(t)
	if _, err := consolidation.NewDriver(fake, h.engine, cp, nil).RunIDs(context.Background(), []int64{1, 5}); err != nil {
		t.Fatalf("RunIDs: %v", err)
	}
	before := len(fake.RecordCalls())

	summary, err := consolidation.NewDriver(fake, h.engine, cp, nil).RunIDs(context.Background(), []int64{1, 5})
	if err != nil {
		t.Fatalf("RunIDs: %v", err)
	}
	if summary.Skipped != 2 || summary.Processed() != 0 || len(fake.RecordCalls()) != before {
		t.Fatalf("rerun touched processed records: %+v", summary)
	}
	if h.seriesCount(t) != 1 {
		t.Fatalf("series count = %d", h.seriesCount(t))
	}
}

func TestDriverMarksMissingRecordsFailed(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	cp := newCheckpoint(t)

	summary, err := consolidation.NewDriver(fake, h.engine, cp, nil).RunIDs(context.Background(), []int64{404, 6})
	if err != nil {
		t.Fatalf("RunIDs returned error: %v", err)
	}
	if summary.Failed != 1 || summary.Linked != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	state, err := cp.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !state.IsFailed(404) || !state.IsProcessed(6) {
		t.Fatalf("unexpected checkpoint failed=%v processed=%v", state.Failed(), state.Processed())
	}
}

func TestDriverAbortsOnTransportFailure(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	fake.FailPage(2, services.Wrap(services.ErrTransient, "catalog", "fetch page", "connection refused", nil))
	cp := newCheckpoint(t)

	summary, err := consolidation.NewDriver(fake, h.engine, cp, nil).Run(context.Background(), 0)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if summary.Linked != 2 {
		t.Fatalf("first page should have completed, got %+v", summary)
	}
	state, err := cp.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Cursor != 2 || state.ProcessedCount() != 2 {
		t.Fatalf("checkpoint should resume at page 2, got cursor=%d processed=%d", state.Cursor, state.ProcessedCount())
	}
}

func TestDriverAbortsOnRecordTransportFailure(t *testing.T) {
	h := newHarness(t)
	fake := catalogFixture()
	fake.FailRecord(1, services.Wrap(services.ErrTransient, "catalog", "fetch record", "timeout", nil))
	cp := newCheckpoint(t)

	_, err := consolidation.NewDriver(fake, h.engine, cp, nil).RunIDs(context.Background(), []int64{1, 6})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	state, _ := cp.Load()
	if state.ShouldSkip(1) {
		t.Fatal("transport failures must not be recorded as handled")
	}
}

func TestDriverHonoursCancellation(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := consolidation.NewDriver(catalogFixture(), h.engine, newCheckpoint(t), nil).Run(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestDriverKeepsProvidedRunID(t *testing.T) {
	h := newHarness(t)
	ctx := services.WithRunID(context.Background(), "run-fixed")
	summary, err := consolidation.NewDriver(catalogFixture(), h.engine, newCheckpoint(t), nil).RunIDs(ctx, []int64{6})
	if err != nil {
		t.Fatalf("RunIDs: %v", err)
	}
	if summary.RunID != "run-fixed" {
		t.Fatalf("run id = %q", summary.RunID)
	}
}
