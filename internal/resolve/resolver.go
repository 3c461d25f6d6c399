package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/vocab"
)

// Discoverer finds an external resource for a name, trying classes in order.
// An empty result with a nil error means no class produced a match.
type Discoverer interface {
	Discover(ctx context.Context, name string, classes []string) (string, error)
}

// Options configures a Resolver.
type Options struct {
	// LocalNamespace prefixes minted URIs. Defaults to the er namespace.
	LocalNamespace string
	// Discoverer is consulted on cache misses. Nil resolves every miss locally.
	Discoverer Discoverer
	// FallbackOnError mints a local URI when discovery fails instead of
	// returning the error.
	FallbackOnError bool
	Logger          *slog.Logger
}

// Stats counts resolver activity for the run summary.
type Stats struct {
	ExternalIDs     int `json:"external_ids"`
	CacheHits       int `json:"cache_hits"`
	DiscoveryCalls  int `json:"discovery_calls"`
	DiscoveryHits   int `json:"discovery_hits"`
	DiscoveryErrors int `json:"discovery_errors"`
	LocalURIs       int `json:"local_uris"`
	SlugCollisions  int `json:"slug_collisions"`
}

// Resolver assigns one canonical URI per (name, kind) for the lifetime of a run.
// It is not safe for concurrent use.
type Resolver struct {
	namespace  string
	discoverer Discoverer
	fallback   bool
	logger     *slog.Logger
	caches     map[graph.Kind]*Cache
	slugOwners map[graph.Kind]map[graph.URI]string
	stats      Stats
}

// New constructs a Resolver with empty caches.
func New(opts Options) *Resolver {
	namespace := strings.TrimSpace(opts.LocalNamespace)
	if namespace == "" {
		namespace = vocab.LocalResource
	}
	r := &Resolver{
		namespace:  namespace,
		discoverer: opts.Discoverer,
		fallback:   opts.FallbackOnError,
		logger:     logging.NewComponentLogger(opts.Logger, "resolve"),
		caches:     make(map[graph.Kind]*Cache, len(graph.Kinds)),
		slugOwners: make(map[graph.Kind]map[graph.URI]string, len(graph.Kinds)),
	}
	for _, kind := range graph.Kinds {
		r.caches[kind] = newCache()
		r.slugOwners[kind] = make(map[graph.URI]string)
	}
	return r
}

// Resolve returns the canonical URI for name. An empty name yields the empty
// URI. A non-empty externalID is located directly in the kind's MusicBrainz
// namespace without touching the cache; applications ignore externalID.
func (r *Resolver) Resolve(ctx context.Context, name, externalID string, kind graph.Kind) (graph.URI, error) {
	if name == "" {
		return "", nil
	}
	cache, ok := r.caches[kind]
	if !ok {
		return "", fmt.Errorf("resolve %q: unsupported kind %s", name, kind)
	}
	if ns := kind.ExternalNamespace(); externalID != "" && ns != "" {
		r.stats.ExternalIDs++
		return graph.URI(ns + externalID), nil
	}
	if uri, hit := cache.Lookup(name); hit {
		r.stats.CacheHits++
		return uri, nil
	}

	uri, err := r.discover(ctx, name, kind)
	if err != nil {
		return "", err
	}
	if uri.IsZero() {
		uri = r.mintLocal(ctx, name, kind)
	}
	cache.store(name, uri)
	return uri, nil
}

func (r *Resolver) discover(ctx context.Context, name string, kind graph.Kind) (graph.URI, error) {
	if r.discoverer == nil {
		return "", nil
	}
	r.stats.DiscoveryCalls++
	found, err := r.discoverer.Discover(ctx, name, kind.DiscoveryClasses())
	if err != nil {
		r.stats.DiscoveryErrors++
		if !r.fallback || ctx.Err() != nil {
			return "", fmt.Errorf("resolve %s %q: %w", kind, name, err)
		}
		logging.Warning{
			Event:  "discovery_fallback",
			Hint:   "check lookup.endpoint reachability or run with --offline",
			Impact: "entity linked to a local URI instead of DBpedia",
		}.Log(logging.WithContext(ctx, r.logger), "discovery failed; using local URI",
			logging.String("kind", kind.String()),
			logging.String("name", name),
			logging.Error(err),
		)
		return "", nil
	}
	if found == "" {
		return "", nil
	}
	r.stats.DiscoveryHits++
	uri := normalizeDiscovered(found)
	if r.logger.Enabled(ctx, slog.LevelDebug) {
		logging.WithContext(ctx, r.logger).Debug("discovered resource",
			logging.String("kind", kind.String()),
			logging.String("name", name),
			logging.String("uri", string(uri)),
		)
	}
	return uri, nil
}

func (r *Resolver) mintLocal(ctx context.Context, name string, kind graph.Kind) graph.URI {
	r.stats.LocalURIs++
	uri := LocalURI(r.namespace, name)
	owners := r.slugOwners[kind]
	if owner, taken := owners[uri]; taken && owner != name {
		r.stats.SlugCollisions++
		logging.Warning{
			Event:  "slug_collision",
			Hint:   "distinct names share one slug; add a MusicBrainz id to tell them apart",
			Impact: "entities merged under one local URI",
		}.Log(logging.WithContext(ctx, r.logger), "local URI collision",
			logging.String("kind", kind.String()),
			logging.String("name", name),
			logging.String("existing_name", owner),
			logging.String("uri", string(uri)),
		)
		return uri
	}
	owners[uri] = name
	return uri
}

// dbpediaResourceRoots are the namespaces Lookup may answer with; hits are
// re-rooted onto the dbpr namespace.
var dbpediaResourceRoots = []string{
	vocab.DBPediaResource,
	"https://dbpedia.org/resource/",
}

func normalizeDiscovered(found string) graph.URI {
	found = strings.TrimSpace(found)
	for _, root := range dbpediaResourceRoots {
		if rest, ok := strings.CutPrefix(found, root); ok {
			return graph.URI(vocab.DBPediaResource + rest)
		}
	}
	return graph.URI(found)
}

// Stats returns a snapshot of resolver counters.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// CacheLen reports how many names are cached for kind.
func (r *Resolver) CacheLen(kind graph.Kind) int {
	if cache, ok := r.caches[kind]; ok {
		return cache.Len()
	}
	return 0
}
