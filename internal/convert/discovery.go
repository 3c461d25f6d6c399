package convert

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"scrobblegraph/internal/config"
	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/lookup"
	"scrobblegraph/internal/lookupcache"
	"scrobblegraph/internal/resolve"
	"scrobblegraph/internal/services"
)

// Discovery is the discovery chain configured for a run: the lookup client,
// optionally fronted by the persistent cache. A nil Discoverer means lookups
// are disabled and every name resolves locally.
type Discovery struct {
	Discoverer resolve.Discoverer
	cache      *lookupcache.Store
	cached     *lookupcache.Discoverer
}

// OpenDiscovery builds the discovery chain described by cfg. Callers must
// Close the result.
func OpenDiscovery(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (*Discovery, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	d := &Discovery{}
	if !cfg.Lookup.Enabled {
		return d, nil
	}

	initial, maxBackoff := cfg.LookupBackoff()
	client, err := lookup.New(cfg.Lookup.Endpoint,
		lookup.WithTimeout(cfg.LookupTimeout()),
		lookup.WithHTTPClient(httpClient),
		lookup.WithUserAgent(cfg.Lookup.UserAgent),
		lookup.WithRetry(cfg.Lookup.MaxRetries, initial, maxBackoff),
		lookup.WithLogger(logger),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "convert", "lookup client", cfg.Lookup.Endpoint, err)
	}
	d.Discoverer = client

	if cfg.LookupCache.Enabled {
		store, err := lookupcache.Open(ctx, cfg.LookupCache.Path)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "convert", "open lookup cache", cfg.LookupCache.Path, err)
		}
		d.cache = store
		d.cached = lookupcache.NewDiscoverer(store, client, logger)
		d.Discoverer = d.cached
		logging.NewComponentLogger(logger, "convert").Debug("lookup cache opened",
			logging.String("path", store.Path()),
		)
	}
	return d, nil
}

// CacheHits reports answers served by the persistent cache.
func (d *Discovery) CacheHits() int {
	if d == nil || d.cached == nil {
		return 0
	}
	return d.cached.Hits()
}

// Close releases the cache database, if any.
func (d *Discovery) Close() error {
	if d == nil || d.cache == nil {
		return nil
	}
	return d.cache.Close()
}
