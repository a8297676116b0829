// Package policy evaluates CEL expressions to gate identifier generation
// requests, in the same style as the streams service's celFilter: an
// expression is compiled once, then evaluated per request against a small,
// fixed variable set (namespace, batch_size, max_batch_size).
//
// A blank expression compiles to an always-allow policy, so operators can
// disable gating entirely without special-casing call sites.
package policy
