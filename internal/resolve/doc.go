// Package resolve assigns canonical URIs to entity names.
//
// A supplied MusicBrainz identifier always wins. Otherwise the per-kind Cache
// is consulted, then the Discoverer, and finally a local URI is minted from a
// slug of the name. Each (name, kind) pair resolves at most once per Resolver,
// so one Resolver must be created per conversion run.
package resolve
