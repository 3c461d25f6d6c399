// Package lookupcache remembers DBpedia Lookup answers across conversion runs
// in a SQLite database (modernc.org/sqlite).
//
// Entries are keyed by the annotation-stripped query plus the ordered class
// list, so "Song (Live)" and "Song" share one answer. Misses are stored too,
// as an empty URI. The per-run resolve.Cache still sits in front of this
// layer; this cache only saves network round trips between runs.
package lookupcache
