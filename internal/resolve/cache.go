package resolve

import "scrobblegraph/internal/graph"

// Cache maps entity names to resolved URIs for one kind. Entries are added on
// first resolution and never evicted.
type Cache struct {
	entries map[string]graph.URI
}

func newCache() *Cache {
	return &Cache{entries: make(map[string]graph.URI)}
}

// Lookup returns the URI cached for name.
func (c *Cache) Lookup(name string) (graph.URI, bool) {
	uri, ok := c.entries[name]
	return uri, ok
}

func (c *Cache) store(name string, uri graph.URI) {
	c.entries[name] = uri
}

// Len reports the number of cached names.
func (c *Cache) Len() int {
	return len(c.entries)
}
