package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animeseries/internal/config"
	"animeseries/internal/series"
	"animeseries/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	catalog    *testsupport.JikanServer
}

// attackOnTitanCatalog is two linked seasons on page one and an unrelated
// show on page two.
func attackOnTitanCatalog(t *testing.T) *testsupport.JikanServer {
	t.Helper()
	server := testsupport.NewJikanServer(t,
		testsupport.Record(16498, "Shingeki no Kyojin", 2013,
			testsupport.WithRelation(series.RelationSequel, 25777),
			testsupport.WithNumbers(25, 8.54, 1)),
		testsupport.Record(25777, "Shingeki no Kyojin Season 2", 2017,
			testsupport.WithRelation(series.RelationPrequel, 16498),
			testsupport.WithNumbers(12, 8.4, 10)),
		testsupport.Record(5114, "Fullmetal Alchemist: Brotherhood", 2009,
			testsupport.WithNumbers(64, 9.1, 3)),
	)
	server.SetPages([]int64{16498, 25777}, []int64{5114})
	return server
}

func setupCLITestEnv(t *testing.T, server *testsupport.JikanServer) *cliTestEnv {
	t.Helper()

	homeDir := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, testsupport.WithCatalogURL(server.URL))
	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfigFile(t, cfg),
		catalog:    server,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (env *cliTestEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("%s: %v\nstdout: %s\nstderr: %s", strings.Join(args, " "), err, out, stderr)
	}
	return out
}

func decodeJSON(t *testing.T, raw string, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		t.Fatalf("decode json: %v\n%s", err, raw)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
