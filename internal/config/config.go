package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the conversion input and output locations.
type Paths struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// Lookup contains configuration for the DBpedia Lookup keyword search.
type Lookup struct {
	Enabled          bool   `toml:"enabled"`
	Endpoint         string `toml:"endpoint"`
	UserAgent        string `toml:"user_agent"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	MaxRetries       int    `toml:"max_retries"`
	InitialBackoffMS int    `toml:"initial_backoff_ms"`
	MaxBackoffMS     int    `toml:"max_backoff_ms"`
	// OnError selects what happens when a lookup fails after retries:
	// "fail" aborts the run, "local" falls back to a local URI.
	OnError string `toml:"on_error"`
}

// LookupCache contains configuration for the persistent discovery cache.
type LookupCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/scrobblegraph/lookup.db
}

// Input contains configuration for reading the scrobble table.
type Input struct {
	// Strict aborts the run on the first malformed row instead of skipping it.
	Strict bool `toml:"strict"`
}

// Graph contains configuration for URI minting.
type Graph struct {
	LocalNamespace string `toml:"local_namespace"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scrobblegraph.
//
// Configuration sections by subsystem:
//   - Paths: source table and destination Turtle file
//   - Lookup: external identifier discovery via DBpedia Lookup
//   - LookupCache: sqlite cache of discovery answers shared across runs
//   - Input: malformed row policy
//   - Graph: local namespace for minted URIs
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Lookup      Lookup      `toml:"lookup"`
	LookupCache LookupCache `toml:"lookup_cache"`
	Input       Input       `toml:"input"`
	Graph       Graph       `toml:"graph"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scrobblegraph/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/scrobblegraph/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scrobblegraph.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Normalize re-applies path expansion and defaults after callers override
// fields (for example from command-line flags), then validates the result.
func (c *Config) Normalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

// EnsureDirectories creates the parent directories the run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.Output)}
	if c.LookupCache.Enabled && strings.TrimSpace(c.LookupCache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.LookupCache.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LookupTimeout returns the per-request lookup timeout.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.TimeoutSeconds) * time.Second
}

// LookupBackoff returns the initial and maximum retry backoff durations.
func (c *Config) LookupBackoff() (time.Duration, time.Duration) {
	return time.Duration(c.Lookup.InitialBackoffMS) * time.Millisecond,
		time.Duration(c.Lookup.MaxBackoffMS) * time.Millisecond
}

// FallbackOnLookupError reports whether failed lookups degrade to local URIs.
func (c *Config) FallbackOnLookupError() bool {
	return c.Lookup.OnError == OnErrorLocal
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLookupCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "scrobblegraph", "lookup.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/scrobblegraph/lookup.db"
	}
	return filepath.Join(home, ".cache", "scrobblegraph", "lookup.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
