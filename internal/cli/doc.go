// Package cli implements the command-line interface for school-letters.
//
// The cli package provides the Cobra-based CLI that runs one listing
// extraction per invocation: it resolves the target page from flags or a
// TOML presets file, sets up the diagnostic log sink, invokes the scraper,
// and writes the resulting envelope as text or JSON, optionally saving the
// JSON envelope to a file.
package cli
