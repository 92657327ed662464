// Package ws attaches WebSocket renderer connections to the
// quick-input controller.
//
// Each connection is upgraded through gin, wrapped as an outbound
// channel with serialized writes, and registered as the controller's
// single renderer. Inbound frames are decoded into protocol events,
// passed through a token-bucket rate limiter, and forwarded to the
// controller for dispatch in delivery order.
package ws
