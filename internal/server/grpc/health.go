package grpcserver

import (
	"context"
	"time"
)

// WatchHealth periodically re-checks the runtime's health and updates the
// gRPC health service's serving status, so that health-check clients
// polling via the standard protocol see storage failures without needing
// their own liveness probe against Pebble.
func (s *Server) WatchHealth(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshHealth(ctx)
		}
	}
}
