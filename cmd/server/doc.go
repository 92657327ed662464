// Package main is the entry point for the quick-input service.
//
// The service owns quick-input session state (pickers and input boxes)
// and exposes it to a renderer process over WebSocket:
//
//	Renderer (UI process) ←ws→ quickinput service (this binary)
//
// The server provides:
//   - WebSocket endpoint for renderer attachment
//   - Health and session stats endpoints
//   - Prometheus metrics
//
// Configuration:
//   - Defaults, layered under an optional TOML file
//   - Environment variables (12-factor, highest precedence)
//   - CLI flags for config path and port
//
// Usage:
//
//	./server -config quickinput.toml
//	./server -port 8600
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
