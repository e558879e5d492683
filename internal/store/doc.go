// Package store provides SQLite-backed durable storage for named JSON
// documents.
//
// Every Put appends a revision holding the canonical serialization of the
// document (jv.Serialize) together with its content digest (jv.Digest):
//   - Documents: one row per name, pointing at the head revision
//   - Revisions: append-only history, UNIQUE(name, seq)
//
// # Invariants
//
// Logical time: revisions are ordered by seq INTEGER (a per-document
// counter starting at 1), never by timestamps.
//
// Content identity: writing a document whose digest equals the head digest
// is a no-op and returns the head revision.
//
// Deterministic results: every listing query has an ORDER BY clause
// (name or seq, then id COLLATE BINARY).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Deleting a document cascades to its revisions
package store
