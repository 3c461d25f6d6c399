// Package main hosts the scrobblegraph CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, applies per-command
// flag overrides, and hands off to internal/convert for conversions. The
// lookup and cache commands expose the discovery chain for troubleshooting.
// Summaries render as rounded tables on a terminal, as plain lines when piped,
// and as indented JSON with --json.
package main
