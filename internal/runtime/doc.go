// Package runtime wires storage, config, the audit ledger, and the
// identifier service into a single-node instance. It exposes Open/Close, a
// basic health check, and accessors for the pieces higher-level servers
// need.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	ids, _ := rt.IDService().GenerateBatch(context.Background(), "default", 10)
package runtime
