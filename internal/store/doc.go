// Package store provides SQLite-backed storage for annotation graphs.
//
// The store holds:
//   - Graphs: one named graph per stored object
//   - Quads: the statements of every named graph, in insertion order
//   - Sequence Members: ordered membership lists for the indexed sequence backend
//
// # Access Pattern
//
// All reads and writes go through a Session, which represents one execution
// context. A Session has at most one active transaction: Begin reports false
// instead of nesting, and WithTx joins an active transaction rather than
// starting a second one. Every transaction is released on commit, abort and
// panic.
//
// # Deterministic Results
//
// Statement reads are ordered by insertion id and name lists by
// name COLLATE BINARY, so repeated reads of unchanged state are identical.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
