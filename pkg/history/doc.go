// Package history persists cleanup run records in a local SQLite database.
//
// Every policy execution produces a Record describing what the run examined
// and removed. The store is append-mostly: records are written once per
// run and queried for reporting or pruned by age.
//
// The store uses a write-ahead log (WAL) for better concurrent performance
// and periodic checkpointing to balance write performance with durability.
package history
