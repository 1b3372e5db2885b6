// Package cli wires the Cobra command hierarchy, configuration loading, and
// structured logging for the WinCC code extractor.
package cli
