package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scrobblegraph/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("SCROBBLEGRAPH_INPUT", "")
	t.Setenv("SCROBBLEGRAPH_OUTPUT", "")
	t.Setenv("SCROBBLEGRAPH_LOOKUP_ENDPOINT", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if !filepath.IsAbs(cfg.Paths.Input) || !strings.HasSuffix(cfg.Paths.Input, filepath.Join("data", "scrobbles.tsv")) {
		t.Fatalf("unexpected input path: %q", cfg.Paths.Input)
	}
	if !filepath.IsAbs(cfg.Paths.Output) || filepath.Base(cfg.Paths.Output) != "scrobbles.ttl" {
		t.Fatalf("unexpected output path: %q", cfg.Paths.Output)
	}
	if !cfg.Lookup.Enabled {
		t.Fatal("expected lookup enabled by default")
	}
	if cfg.Lookup.Endpoint != config.Default().Lookup.Endpoint {
		t.Fatalf("unexpected lookup endpoint: %q", cfg.Lookup.Endpoint)
	}
	if cfg.Lookup.OnError != config.OnErrorFail {
		t.Fatalf("expected on_error fail, got %q", cfg.Lookup.OnError)
	}
	if cfg.FallbackOnLookupError() {
		t.Fatal("expected no fallback by default")
	}
	if cfg.LookupCache.Enabled {
		t.Fatal("expected lookup cache disabled by default")
	}
	wantCache := filepath.Join(tempHome, ".cache", "scrobblegraph", "lookup.db")
	if cfg.LookupCache.Path != wantCache {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.LookupCache.Path, wantCache)
	}
	if cfg.Graph.LocalNamespace != "http://ernes7a.lt/sws/" {
		t.Fatalf("unexpected local namespace: %q", cfg.Graph.LocalNamespace)
	}
	if cfg.Input.Strict {
		t.Fatal("expected lenient input by default")
	}
	if cfg.LookupTimeout() != 10*time.Second {
		t.Fatalf("unexpected lookup timeout: %s", cfg.LookupTimeout())
	}
	initial, maxBackoff := cfg.LookupBackoff()
	if initial != 500*time.Millisecond || maxBackoff != 8*time.Second {
		t.Fatalf("unexpected backoff: %s / %s", initial, maxBackoff)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scrobblegraph.toml")
	t.Setenv("SCROBBLEGRAPH_INPUT", "")
	t.Setenv("SCROBBLEGRAPH_OUTPUT", "")
	t.Setenv("SCROBBLEGRAPH_LOOKUP_ENDPOINT", "")

	type payload struct {
		Paths struct {
			Input  string `toml:"input"`
			Output string `toml:"output"`
		} `toml:"paths"`
		Lookup struct {
			Enabled    bool   `toml:"enabled"`
			Endpoint   string `toml:"endpoint"`
			MaxRetries int    `toml:"max_retries"`
			OnError    string `toml:"on_error"`
		} `toml:"lookup"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.Input = filepath.Join(tempDir, "in.tsv")
	custom.Paths.Output = filepath.Join(tempDir, "out", "graph.ttl")
	custom.Lookup.Enabled = true
	custom.Lookup.Endpoint = "https://lookup.example.com/api/search/KeywordSearch"
	custom.Lookup.MaxRetries = 1
	custom.Lookup.OnError = "LOCAL"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.Input != custom.Paths.Input {
		t.Fatalf("expected input from file, got %q", cfg.Paths.Input)
	}
	if cfg.Paths.Output != custom.Paths.Output {
		t.Fatalf("expected output from file, got %q", cfg.Paths.Output)
	}
	if cfg.Lookup.Endpoint != custom.Lookup.Endpoint {
		t.Fatalf("expected endpoint override, got %q", cfg.Lookup.Endpoint)
	}
	if cfg.Lookup.MaxRetries != 1 {
		t.Fatalf("expected max retries 1, got %d", cfg.Lookup.MaxRetries)
	}
	if !cfg.FallbackOnLookupError() {
		t.Fatalf("expected on_error to normalize to local, got %q", cfg.Lookup.OnError)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if cfg.Lookup.TimeoutSeconds != config.Default().Lookup.TimeoutSeconds {
		t.Fatalf("expected untouched timeout default, got %d", cfg.Lookup.TimeoutSeconds)
	}
}

func TestEnvVarsOverrideConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scrobblegraph.toml")
	contents := `[paths]
input = "file-input.tsv"
output = "file-output.ttl"

[lookup]
endpoint = "http://file.example.com/search"
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	envInput := filepath.Join(tempDir, "env.tsv")
	envOutput := filepath.Join(tempDir, "env.ttl")
	t.Setenv("SCROBBLEGRAPH_INPUT", envInput)
	t.Setenv("SCROBBLEGRAPH_OUTPUT", envOutput)
	t.Setenv("SCROBBLEGRAPH_LOOKUP_ENDPOINT", "http://env.example.com/search")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Input != envInput {
		t.Errorf("expected input from env, got %q", cfg.Paths.Input)
	}
	if cfg.Paths.Output != envOutput {
		t.Errorf("expected output from env, got %q", cfg.Paths.Output)
	}
	if cfg.Lookup.Endpoint != "http://env.example.com/search" {
		t.Errorf("expected endpoint from env, got %q", cfg.Lookup.Endpoint)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[lookup\nenabled = true"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "KeywordSearch") {
		t.Fatalf("sample config missing lookup endpoint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Lookup.OnError != config.OnErrorFail {
		t.Fatalf("expected sample on_error fail, got %q", cfg.Lookup.OnError)
	}
	if cfg.Graph.LocalNamespace != config.Default().Graph.LocalNamespace {
		t.Fatalf("unexpected sample namespace: %q", cfg.Graph.LocalNamespace)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero timeout", func(c *config.Config) { c.Lookup.TimeoutSeconds = 0 }},
		{"negative retries", func(c *config.Config) { c.Lookup.MaxRetries = -1 }},
		{"inverted backoff", func(c *config.Config) { c.Lookup.MaxBackoffMS = c.Lookup.InitialBackoffMS - 1 }},
		{"unknown on_error", func(c *config.Config) { c.Lookup.OnError = "retry" }},
		{"endpoint without scheme", func(c *config.Config) { c.Lookup.Endpoint = "lookup.dbpedia.org" }},
		{"namespace without terminator", func(c *config.Config) { c.Graph.LocalNamespace = "http://example.com/sws" }},
		{"same input and output", func(c *config.Config) { c.Paths.Output = c.Paths.Input }},
		{"cache enabled without path", func(c *config.Config) {
			c.LookupCache.Enabled = true
			c.LookupCache.Path = " "
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateSkipsEndpointWhenLookupDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Lookup.Enabled = false
	cfg.Lookup.Endpoint = "not a url"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled lookup to skip endpoint check, got %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Output = filepath.Join(base, "out", "graph.ttl")
	cfg.LookupCache.Enabled = true
	cfg.LookupCache.Path = filepath.Join(base, "cache", "lookup.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{filepath.Join(base, "out"), filepath.Join(base, "cache")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}
