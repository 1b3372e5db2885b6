// Package panel models WinCC panel XML documents: parsing, script discovery
// with shape context, identifier resolution, and in-place script rewriting.
package panel
