// Package batch applies the extract and update pipelines across directory
// trees, aggregating per-file outcomes into a run summary.
package batch
