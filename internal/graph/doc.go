// Package graph models the entities written to the Turtle output and the
// run-scoped Store that coalesces repeated observations of them.
//
// Every entity is keyed by its canonical URI. Upserting an existing URI
// overwrites its scalar fields; albums additionally union their track sets,
// which stay sorted ascending by URI text. Scrobbles are kept in row order and
// never merged. Readers return entries in the order the serializer emits them.
package graph
