// Package vector defines the document model and Store API for persisting
// importance-weighted vectors, plus the supporting pieces both backends
// share. It includes:
//   - Document model and Store interface (add / search / reweight / remove)
//   - SQLiteStore: durable storage ranked via the vec_cosine SQL function
//   - PGStore: Postgres/pgvector-backed storage using native operators
//   - Stored-vector BLOB codec and full-width cosine similarity
//   - Schema helpers and index-blob persistence
package vector
