// Package server assembles the HTTP surface: the controller, the
// WebSocket renderer endpoint, health and session stats endpoints, and
// the Prometheus metrics exporter, all behind gin with CORS and
// metrics middleware.
package server
