// Package index defines a minimal abstraction for in-memory indexes over
// importance-weighted stored vectors: building from (id, stored vector)
// pairs, kNN queries with query vectors, and binary serialization so an
// index blob can be persisted alongside the documents.
package index
