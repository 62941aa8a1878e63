package main

import "testing"

func TestPreflightCommandReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t, attackOnTitanCatalog(t))

	out := env.run(t, "preflight")
	requireContains(t, out, "Data directory")
	requireContains(t, out, "Log directory")
	requireContains(t, out, "(reachable)")
	if hits := env.catalog.Hits("/top/anime"); hits != 1 {
		t.Fatalf("expected one ping, got %d", hits)
	}
}

func TestPreflightCommandFailsWhenCatalogDown(t *testing.T) {
	server := attackOnTitanCatalog(t)
	env := setupCLITestEnv(t, server)
	server.Close()

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err == nil {
		t.Fatal("expected failure")
	}
	requireContains(t, out, "[ERROR]")
}
