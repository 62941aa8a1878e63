package preflight

import (
	"context"

	"animeseries/internal/catalog"
	"animeseries/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Pinger is satisfied by the catalog client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes every preflight check for cfg. A nil pinger builds a
// catalog client from cfg.
func RunAll(ctx context.Context, cfg *config.Config, pinger Pinger) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if pinger == nil {
		client, err := catalog.NewFromConfig(cfg, catalog.WithRetries(0, 0))
		if err != nil {
			return append(results, Result{Name: "Catalog API", Detail: err.Error()})
		}
		pinger = client
	}
	return append(results, CheckCatalog(ctx, cfg.Catalog.BaseURL, pinger))
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
