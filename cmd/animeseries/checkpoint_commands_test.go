package main

import (
	"os"
	"testing"
)

func TestCheckpointShowWithoutFile(t *testing.T) {
	env := setupCLITestEnv(t, attackOnTitanCatalog(t))

	out := env.run(t, "checkpoint", "show")
	requireContains(t, out, "== Checkpoint ==")
	requireContains(t, out, "[INFO] 1")
	requireContains(t, out, "never")
}

func TestCheckpointResetFailedOnlyKeepsProgress(t *testing.T) {
	env := setupCLITestEnv(t, attackOnTitanCatalog(t))
	env.run(t, "consolidate", "--skip-preflight", "--decider", "create_new", "--id", "16498", "--id", "999")

	requireContains(t, env.run(t, "checkpoint", "reset", "--failed-only"), "Cleared 1 failed id(s)")

	var cp checkpointJSON
	decodeJSON(t, env.run(t, "checkpoint", "show", "--json"), &cp)
	if cp.Processed != 1 || len(cp.Failed) != 0 {
		t.Fatalf("unexpected checkpoint after failed-only reset %+v", cp)
	}

	// The cleared id is fetched again on the next run.
	env.run(t, "consolidate", "--skip-preflight", "--decider", "create_new", "--id", "999")
	if hits := env.catalog.Hits("/anime/999/full"); hits != 2 {
		t.Fatalf("expected failed id to be retried, got %d fetches", hits)
	}
}

func TestCheckpointResetRemovesFile(t *testing.T) {
	env := setupCLITestEnv(t, attackOnTitanCatalog(t))
	env.run(t, "consolidate", "--decider", "create_new")

	requireContains(t, env.run(t, "checkpoint", "reset"), "next run starts from page 1")
	if _, err := os.Stat(env.cfg.Paths.CheckpointPath); !os.IsNotExist(err) {
		t.Fatalf("expected checkpoint file removed, stat err=%v", err)
	}

	// Stored records keep their series; a fresh walk links them as existing.
	out := env.run(t, "consolidate", "--decider", "create_new")
	requireContains(t, out, "[OK] 3 (0 new series, 0 renamed)")
	var all []seriesView
	decodeJSON(t, env.run(t, "series", "list", "--json"), &all)
	if len(all) != 2 {
		t.Fatalf("expected series to be untouched, got %d", len(all))
	}
}
