// Package serverrun exposes a shared Run entrypoint used by the CLI to
// start the identifier service's runtime with gRPC and HTTP servers,
// handling lifecycle and graceful shutdown.
//
// Example:
//
//	opts := serverrun.Options{DataDir: "./data", GRPCAddr: ":7443", HTTPAddr: ":7080", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun
