// Package turtle serializes a graph.Store as RDF Turtle.
//
// Output is deterministic: prefix declarations sorted by name, then one block
// per entity family in a fixed order (scrobbles, applications, tracks,
// artists, albums) with one triple per line. Resources are compacted against
// the declared prefixes when the local part is a legal Turtle name and
// written as escaped IRIs otherwise.
package turtle
