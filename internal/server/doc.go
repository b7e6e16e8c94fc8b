// Package server exposes run metrics over HTTP while a simulation runs.
//
// The server is optional and only started when a metrics address is
// configured. It serves GET /metrics in the Prometheus exposition format and
// GET /healthz, behind a middleware that sets conservative security headers.
package server
