// Package lookup is a client for the DBpedia Lookup KeywordSearch API.
//
// Discover implements resolve.Discoverer: it strips parenthesized and
// bracketed annotations from the name, then queries each candidate class in
// order with MaxHits=1 and returns the first URI. Requests carry
// Accept: application/json and a configurable User-Agent. Transient failures
// (429, 502, 503, 504, timeouts and connection errors) are retried with capped
// exponential backoff; other failures are returned immediately. Returned errors
// are tagged with services.ErrTransient or services.ErrExternal.
package lookup
