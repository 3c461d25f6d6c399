package testsupport

import (
	"path/filepath"
	"testing"

	"scrobblegraph/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test. Lookups
// are disabled unless WithLookupEndpoint is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Input = filepath.Join(base, "data", "scrobbles.tsv")
	cfgVal.Paths.Output = filepath.Join(base, "out", "scrobbles.ttl")
	cfgVal.Lookup.Enabled = false
	cfgVal.Lookup.MaxRetries = 1
	cfgVal.Lookup.InitialBackoffMS = 1
	cfgVal.Lookup.MaxBackoffMS = 2
	cfgVal.LookupCache.Enabled = false
	cfgVal.LookupCache.Path = filepath.Join(base, "cache", "lookup.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLookupEndpoint enables discovery against endpoint.
func WithLookupEndpoint(endpoint string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lookup.Enabled = true
		b.cfg.Lookup.Endpoint = endpoint
	}
}

// WithLookupCache enables the sqlite lookup cache inside the temp directory.
func WithLookupCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LookupCache.Enabled = true
	}
}

// WithFallback makes failed lookups degrade to local URIs.
func WithFallback() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lookup.OnError = config.OnErrorLocal
	}
}

// WithStrictInput aborts on the first malformed row.
func WithStrictInput() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Input.Strict = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Paths.Input))
}
