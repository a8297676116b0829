// Package httpserver provides a minimal REST gateway over the identifier
// service: generate one or many identifiers, inspect the audit tail, and
// check health as plain JSON, alongside the gRPC health-checking endpoint.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()})
//	s := httpserver.New(rt, rt.Logger())
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":7080")
package httpserver
