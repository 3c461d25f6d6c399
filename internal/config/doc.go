// Package config loads, normalizes, and validates scrobblegraph configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SCROBBLEGRAPH_LOOKUP_ENDPOINT. The Config type centralizes every knob a
// conversion run needs: where the scrobble table lives, where the Turtle file
// goes, how the lookup service is reached and what happens when it fails.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
