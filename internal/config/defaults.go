package config

const (
	defaultConfigPath         = "~/.config/animeseries/config.toml"
	projectConfigName         = "animeseries.toml"
	defaultDataDir            = "~/.local/share/animeseries"
	defaultLogSubdir          = "logs"
	defaultDatabaseName       = "animeseries.db"
	defaultCheckpointName     = "checkpoint.json"
	lockFileName              = "animeseries.lock"
	defaultCatalogBaseURL     = "https://api.jikan.moe/v4"
	defaultRequestDelayMS     = 1000
	defaultCatalogTimeout     = 10
	defaultCatalogMaxRetries  = 3
	defaultCatalogUserAgent   = "animeseries/dev"
	defaultPageSource         = PageSourceTop
	defaultTargetCount        = 100
	defaultDecider            = DeciderConsole
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 30
	envCatalogURL             = "ANIMESERIES_CATALOG_URL"
	envDataDir                = "ANIMESERIES_DATA_DIR"
	minRequestDelayMS         = 0
	maxCatalogTimeoutSeconds  = 300
	maxCatalogRetries         = 10
	maxConsolidationTarget    = 100000
	maxLogRetentionDays       = 3650
	defaultTargetCountMinimum = 1
)

// Catalog page sources.
const (
	PageSourceTop = "top"
	PageSourceAll = "all"
)

// Decider names accepted by consolidation.decider.
const (
	DeciderConsole   = "console"
	DeciderScripted  = "scripted"
	DeciderCreateNew = "create_new"
)

// Default returns a Config populated with repository defaults. Derived paths
// stay empty until normalization resolves them against the data directory.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			RequestDelayMS: defaultRequestDelayMS,
			TimeoutSeconds: defaultCatalogTimeout,
			MaxRetries:     defaultCatalogMaxRetries,
			UserAgent:      defaultCatalogUserAgent,
			PageSource:     defaultPageSource,
		},
		Consolidation: Consolidation{
			TargetCount: defaultTargetCount,
			Decider:     defaultDecider,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
