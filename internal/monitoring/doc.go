/*
Package monitoring provides Prometheus metrics for the quick-input
service.

# Overview

Tracks the session lifecycle (created, active), the update pipeline
(coalesced mutations, sent updates, cancelled flushes), inbound
renderer events, one-shot pick/input outcomes, renderer connections,
and HTTP traffic on the host endpoints.

# Usage

	metrics := monitoring.NewDefault()
	router.Use(monitoring.Middleware(metrics))
	metrics.SessionsCreated.Inc()
*/
package monitoring
