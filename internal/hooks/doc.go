// Package hooks implements the git lint checks shipped alongside the
// extractor: commit message and branch name validation. The checks share no
// state with the transcoding engine.
package hooks
