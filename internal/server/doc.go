// Package server exposes the engine's Prometheus metrics over HTTP.
//
// The server is intentionally small: /metrics for scrapes and /healthz for
// liveness probes, both behind the security headers middleware.
package server
