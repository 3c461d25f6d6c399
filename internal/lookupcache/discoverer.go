package lookupcache

import (
	"context"
	"log/slog"

	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/resolve"
	"scrobblegraph/internal/textutil"
)

// Discoverer answers from the Store when possible and records what next
// returns. Errors from next are never cached. Store failures are logged and
// the call falls through to next.
type Discoverer struct {
	store  *Store
	next   resolve.Discoverer
	logger *slog.Logger
	hits   int
}

var _ resolve.Discoverer = (*Discoverer)(nil)

// NewDiscoverer wraps next with the persistent cache.
func NewDiscoverer(store *Store, next resolve.Discoverer, logger *slog.Logger) *Discoverer {
	return &Discoverer{
		store:  store,
		next:   next,
		logger: logging.NewComponentLogger(logger, "lookupcache"),
	}
}

// Discover implements resolve.Discoverer.
func (d *Discoverer) Discover(ctx context.Context, name string, classes []string) (string, error) {
	query := textutil.StripAnnotations(name)
	if query == "" || d.store == nil {
		return d.next.Discover(ctx, name, classes)
	}

	entry, found, err := d.store.Get(ctx, query, classes)
	if err != nil {
		logging.Warning{
			Event:  "lookupcache_read_failed",
			Hint:   "delete the lookup cache database if the problem persists",
			Impact: "lookup service queried directly",
		}.Log(logging.WithContext(ctx, d.logger), "lookup cache read failed",
			logging.String("query", query),
			logging.Error(err),
		)
	} else if found {
		d.hits++
		return entry.URI, nil
	}

	uri, err := d.next.Discover(ctx, name, classes)
	if err != nil {
		return "", err
	}
	if err := d.store.Put(ctx, Entry{Query: query, Classes: classes, URI: uri}); err != nil {
		logging.Warning{
			Event:  "lookupcache_write_failed",
			Hint:   "check free space and permissions for the lookup cache path",
			Impact: "answer will be looked up again next run",
		}.Log(logging.WithContext(ctx, d.logger), "lookup cache write failed",
			logging.String("query", query),
			logging.Error(err),
		)
	}
	return uri, nil
}

// Hits reports how many answers were served from the store.
func (d *Discoverer) Hits() int {
	return d.hits
}
