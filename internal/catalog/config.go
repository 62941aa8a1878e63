package catalog

import (
	"animeseries/internal/config"
	"animeseries/internal/services"
)

// NewFromConfig builds a client from the [catalog] section. Extra options are
// applied after the configured ones.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, componentName, "new client", "config required", nil)
	}
	base := []Option{
		WithTimeout(cfg.CatalogTimeout()),
		WithRetries(cfg.Catalog.MaxRetries, 0),
		WithUserAgent(cfg.Catalog.UserAgent),
		WithSource(cfg.Catalog.PageSource),
	}
	client, err := New(cfg.Catalog.BaseURL, cfg.RequestDelay(), append(base, opts...)...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, componentName, "new client", "", err)
	}
	return client, nil
}
