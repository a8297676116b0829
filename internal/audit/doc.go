// Package audit implements an append-only ledger of generated identifiers,
// keyed by namespace and node so that a single Pebble instance can back many
// generator nodes without their sequence counters colliding.
//
// The ledger records metadata about each generation event (which id, when,
// under what namespace and node). It never reconstructs or influences an
// identifier's bits, since audit succeeds or fails independently of
// generation itself.
//
// Example:
//
//	ledger := audit.Open(db)
//	seq, _ := ledger.Record("default", "node-1", id.String())
//	recent, _ := ledger.Tail("default", "node-1", 50)
package audit
