// Package convert runs one end-to-end conversion: it locks the destination,
// reads the scrobble table, resolves entities (through the lookup service and
// the optional sqlite cache), and atomically writes the Turtle document.
//
// Run is the entry point used by the CLI. OpenDiscovery builds the same
// discovery chain on its own for troubleshooting commands.
package convert
