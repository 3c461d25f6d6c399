// Package services defines shared utilities consumed by the conversion
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and input row numbers for
//     logging and diagnostics.
//   - Structured error markers plus the Wrap helper so failures carry a
//     consistent classification from the lookup client up to the CLI.
//
// Use these helpers when wiring new pipeline code so operational behaviour
// (error handling, observability) stays uniform.
package services
