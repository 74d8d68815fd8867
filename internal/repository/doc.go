// Package repository binds hypergraph records to an embedded key-value
// store.
//
// # Gateway
//
// Gateway is the byte-oriented put/get/delete/scan contract of the storage
// engine. The sqlite subpackage implements it with one table per keyspace
// inside a single SQLite file.
//
// # Repository
//
// Repository[T] is the CRUD facade for one entity kind. It encodes records
// with a Codec (see internal/codec) and forwards them to a Gateway:
//
//   - Create and Update are the same full replace; last writer wins
//   - GetByKey returns nil for an absent key and surfaces decode failures
//   - Delete is idempotent
//   - GetAll skips and logs entries that fail to decode
//
// Give every entity kind its own keyspace so GetAll never mixes record
// shapes.
//
// # Testing
//
// The sqlite tests run against in-memory databases.
package repository
