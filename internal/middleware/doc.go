// Package middleware provides gin middleware for the HTTP surface:
// CORS for cross-origin renderer processes and per-IP rate limiting.
package middleware
