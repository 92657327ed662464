// Package transport defines the outbound channel the quick-input core
// sends protocol messages over. The channel is assumed reliable,
// ordered, and asynchronous; delivery and rendering are the remote
// side's concern.
package transport

import "errors"

// ErrDetached is returned when sending while no renderer is attached.
var ErrDetached = errors.New("no renderer channel attached")

// Channel delivers one serialized protocol message to the renderer.
type Channel interface {
	Send(msg any) error
}

// Memory is an in-process Channel that records every message, for
// tests and local wiring.
type Memory struct {
	msgs []any
}

// Send appends msg to the recorded stream.
func (m *Memory) Send(msg any) error {
	m.msgs = append(m.msgs, msg)
	return nil
}

// Messages returns the messages sent so far, in order.
func (m *Memory) Messages() []any {
	return m.msgs
}

// Reset clears the recorded stream.
func (m *Memory) Reset() {
	m.msgs = nil
}
