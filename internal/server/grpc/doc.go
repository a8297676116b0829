// Package grpcserver hosts the gRPC server for the identifier service. It
// registers the standard grpc.health.v1 health-checking protocol and keeps
// it in sync with the runtime's storage health, so orchestrators can probe
// this process the same way they probe any other gRPC service.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()})
//	s := grpcserver.New(rt)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go s.WatchHealth(ctx, 5*time.Second)
//	_ = s.ListenAndServe(ctx, ":7443")
package grpcserver
