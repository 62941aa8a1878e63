package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"animeseries/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a normalized config whose paths live in a unique temp
// directory per test. Catalog spacing is disabled and the decider defaults to
// create_new so tests never block on stdin.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DatabasePath = filepath.Join(base, "data", "animeseries.db")
	cfgVal.Paths.CheckpointPath = filepath.Join(base, "data", "checkpoint.json")
	cfgVal.Catalog.BaseURL = "http://127.0.0.1:0"
	cfgVal.Catalog.RequestDelayMS = 0
	cfgVal.Catalog.MaxRetries = 0
	cfgVal.Consolidation.Decider = config.DeciderCreateNew

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	return builder.cfg
}

// WithCatalogURL points the config at a test catalog server.
func WithCatalogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = url
	}
}

// WithDecider selects the disambiguation decider and optional script path.
func WithDecider(name, scriptPath string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Consolidation.Decider = name
		b.cfg.Consolidation.ScriptPath = scriptPath
	}
}

// WithTargetCount overrides the per-run record target.
func WithTargetCount(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Consolidation.TargetCount = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// WriteConfigFile encodes cfg as TOML next to its data directory and returns
// the file path, for tests that drive the CLI through --config.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
