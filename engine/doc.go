// Package engine provides helpers for the database drivers used by this
// module: opening SQLite and Postgres connections and registering the SQL
// scalar functions (vec_cosine, vec_importance) that let the SQLite backend
// rank and inspect importance-weighted vectors directly in queries.
package engine
