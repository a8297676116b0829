// Package uuidv7 generates monotonic, time-ordered 128-bit identifiers
// following the UUID version 7 layout of the RFC 4122bis draft.
//
// # Layout
//
// Each identifier is 16 bytes, big-endian:
//
//	bytes 0..5   unix_ts_ms  48-bit millisecond Unix timestamp
//	byte  6 hi   ver         4-bit version, always 0111 (7)
//	byte  6 lo + byte 7      rand_a, here the high 12 bits of a monotonic counter
//	byte  8 hi   var         2-bit variant, always 10
//	byte  8 lo..15           rand_b, here the low 6 counter bits plus random tail
//
// # Monotonicity
//
// The monotonic ordering guarantee holds for identifiers produced by calls
// that happen-before one another on the same generator instance; there is
// no cross-instance ordering guarantee, matching the "no cross-thread
// ordering" contract of the design this package implements.
//
// Generate draws its generator from a sync.Pool rather than a slot pinned
// to the calling goroutine for its lifetime. That approximates one
// generator per OS thread well enough to avoid lock contention on the hot
// path, but it is not the same guarantee: a sync.Pool can and does hand a
// later call a different, freshly-reseeded generator than an earlier call
// on the same goroutine got, for instance after the pool is cleared during
// a GC cycle. When that happens the new generator's random reseed can sort
// below the previous one within the same millisecond. Generate's ordering
// is therefore best-effort, not the package's monotonic guarantee.
//
// Callers that need the guarantee for real should hold their own Generator
// (see New) and call Next on it directly. A Generator's state belongs to
// whoever holds it: nothing recycles or reseeds it between calls, so a
// caller making only sequential calls (or serializing concurrent ones
// itself) gets strictly increasing identifiers for as long as it keeps
// the Generator alive. This is the "argument-passed generator" form of
// per-owner state for targets where an OS-thread-local slot isn't
// available; Generate's pool remains the low-friction convenience for
// callers that don't need the hard guarantee.
package uuidv7
