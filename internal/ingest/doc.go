// Package ingest drives a single sequential pass over scrobble rows.
//
// Each row resolves its track, artist, album, album artist and application
// names, appends one scrobble to the graph.Store and upserts every entity
// whose URI is non-empty. The album artist shares the artist cache. An album
// gains the row's track when both are present.
package ingest
