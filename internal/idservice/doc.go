// Package idservice is the domain layer between the transport servers and
// the bare pkg/uuidv7 generator. It enforces the namespace allow-list,
// evaluates the CEL generation policy, calls into pkg/uuidv7, and appends
// each generated identifier to the audit ledger when enabled.
//
// Example:
//
//	svc, _ := idservice.New(cfg, logger, audit.Open(db))
//	ids, _ := svc.GenerateBatch(ctx, "default", 10)
package idservice
