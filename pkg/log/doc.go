// Package log provides the service's structured logging facade and
// utilities.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that routes records through a
// pluggable Formatter/Output pipeline, so JSON and plain-text rendering, and
// console/file destinations, can be swapped without touching call sites.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.JSONFormatter{}),
//	    log.WithOutput(&log.ConsoleOutput{}),
//	)
//	l = l.With(log.Component("idservice"), log.Str("node", "n1"))
//	l.Info("generator started", log.Int("port", 8080))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config produced by
// internal/config, supporting JSON or text formatting.
//
// # Interop
//
// To integrate with libraries that log through the standard "log" package
// (Pebble does this internally), use RedirectStdLog to route their output
// through a Logger at error level.
package log
