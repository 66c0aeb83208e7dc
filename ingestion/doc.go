// Package ingestion provides the offline embedding-generation job.
//
// The Pipeline type batches catalog entries through the embedding provider
// and persists the resulting embedding records, including:
//   - Assigning content-based IDs to entries that arrive without one
//   - Generating embeddings for entry descriptions in concurrent batches
//   - Writing validated records to the product repository
//
// Batches are processed concurrently on a worker pool. Ingest blocks until
// every batch has been embedded and persisted, so callers can rebuild the
// vector index immediately afterwards.
package ingestion
