package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLookup()
	if err := c.normalizeLookupCache(); err != nil {
		return err
	}
	c.Graph.LocalNamespace = strings.TrimSpace(c.Graph.LocalNamespace)
	if c.Graph.LocalNamespace == "" {
		c.Graph.LocalNamespace = defaultLocalNamespace
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SCROBBLEGRAPH_INPUT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Input = value
	}
	if value, ok := os.LookupEnv("SCROBBLEGRAPH_OUTPUT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Output = value
	}
	if strings.TrimSpace(c.Paths.Input) == "" {
		c.Paths.Input = defaultInputPath
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		c.Paths.Output = defaultOutputPath
	}
	var err error
	if c.Paths.Input, err = expandPath(strings.TrimSpace(c.Paths.Input)); err != nil {
		return fmt.Errorf("paths.input: %w", err)
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	return nil
}

func (c *Config) normalizeLookup() {
	if value, ok := os.LookupEnv("SCROBBLEGRAPH_LOOKUP_ENDPOINT"); ok && strings.TrimSpace(value) != "" {
		c.Lookup.Endpoint = value
	}
	c.Lookup.Endpoint = strings.TrimSpace(c.Lookup.Endpoint)
	if c.Lookup.Endpoint == "" {
		c.Lookup.Endpoint = defaultLookupEndpoint
	}
	c.Lookup.UserAgent = strings.TrimSpace(c.Lookup.UserAgent)
	if c.Lookup.UserAgent == "" {
		c.Lookup.UserAgent = defaultLookupUserAgent
	}
	if c.Lookup.TimeoutSeconds <= 0 {
		c.Lookup.TimeoutSeconds = defaultLookupTimeoutSeconds
	}
	if c.Lookup.MaxRetries < 0 {
		c.Lookup.MaxRetries = 0
	}
	if c.Lookup.InitialBackoffMS <= 0 {
		c.Lookup.InitialBackoffMS = defaultLookupInitialBackoffMS
	}
	if c.Lookup.MaxBackoffMS <= 0 {
		c.Lookup.MaxBackoffMS = defaultLookupMaxBackoffMS
	}
	c.Lookup.OnError = strings.ToLower(strings.TrimSpace(c.Lookup.OnError))
	if c.Lookup.OnError == "" {
		c.Lookup.OnError = OnErrorFail
	}
}

func (c *Config) normalizeLookupCache() error {
	var err error
	if strings.TrimSpace(c.LookupCache.Path) == "" {
		c.LookupCache.Path = defaultLookupCachePath()
	}
	if c.LookupCache.Path, err = expandPath(c.LookupCache.Path); err != nil {
		return fmt.Errorf("lookup_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
