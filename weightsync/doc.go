// Package weightsync provides SCN-based propagation of stored-vector changes
// to downstream replicas: DDL builders for the upstream log machinery plus
// helpers to drain the log in batches and track per-replica progress.
// Inserts, reweights, and deletes against a shadow table are captured into
// a change-log table by triggers, so an external ANN replica can replay them
// in order without diffing vectors. Reweight-only updates are tagged
// distinctly in the log: a replica that caches derived ranking state can then
// patch the importance slot instead of re-ingesting content.
package weightsync
