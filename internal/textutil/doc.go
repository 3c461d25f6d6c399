// Package textutil provides the small text transformations applied to names
// read from the scrobble table.
//
// The primary use cases are:
//   - Removing embedded double quotes before names become literals or cache keys
//   - Stripping parenthesized and bracketed annotations before keyword search
//   - Building case-folded sort keys for deterministic output ordering
package textutil
