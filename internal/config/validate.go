package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateLookupCache(); err != nil {
		return err
	}
	if err := c.validateGraph(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Input) == "" {
		return errors.New("paths.input must be set")
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		return errors.New("paths.output must be set")
	}
	if c.Paths.Input == c.Paths.Output {
		return errors.New("paths.output must differ from paths.input")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if err := ensurePositiveMap(map[string]int{
		"lookup.timeout_seconds":    c.Lookup.TimeoutSeconds,
		"lookup.initial_backoff_ms": c.Lookup.InitialBackoffMS,
		"lookup.max_backoff_ms":     c.Lookup.MaxBackoffMS,
	}); err != nil {
		return err
	}
	if c.Lookup.MaxRetries < 0 {
		return errors.New("lookup.max_retries must be >= 0")
	}
	if c.Lookup.MaxBackoffMS < c.Lookup.InitialBackoffMS {
		return errors.New("lookup.max_backoff_ms must be >= lookup.initial_backoff_ms")
	}
	switch c.Lookup.OnError {
	case OnErrorFail, OnErrorLocal:
	default:
		return fmt.Errorf("lookup.on_error must be %q or %q, got %q", OnErrorFail, OnErrorLocal, c.Lookup.OnError)
	}
	if !c.Lookup.Enabled {
		return nil
	}
	if err := ensureHTTPURL("lookup.endpoint", c.Lookup.Endpoint); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLookupCache() error {
	if c.LookupCache.Enabled && strings.TrimSpace(c.LookupCache.Path) == "" {
		return errors.New("lookup_cache.path must be set when lookup_cache.enabled is true")
	}
	return nil
}

func (c *Config) validateGraph() error {
	ns := c.Graph.LocalNamespace
	if err := ensureHTTPURL("graph.local_namespace", ns); err != nil {
		return err
	}
	if !strings.HasSuffix(ns, "/") && !strings.HasSuffix(ns, "#") {
		return errors.New("graph.local_namespace must end with '/' or '#'")
	}
	return nil
}

func ensureHTTPURL(key, value string) error {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
