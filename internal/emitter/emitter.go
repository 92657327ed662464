// Package emitter provides a small observer mechanism for local
// widget events: register a handler, fire to all registered handlers,
// drop everything on dispose.
package emitter

import (
	"sort"
	"sync"
)

// Emitter fires values of type T to subscribed handlers. Handlers may
// subscribe or unsubscribe from within a handler invocation; a fire in
// progress uses the subscriber set captured at its start.
type Emitter[T any] struct {
	mu       sync.Mutex
	handlers map[int]func(T)
	next     int
}

// Subscribe registers fn and returns a function that removes it.
// Unsubscribing twice is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[int]func(T))
	}
	key := e.next
	e.next++
	e.handlers[key] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, key)
	}
}

// Fire invokes every registered handler with v, in subscription order.
func (e *Emitter[T]) Fire(v T) {
	e.mu.Lock()
	keys := make([]int, 0, len(e.handlers))
	for k := range e.handlers {
		keys = append(keys, k)
	}
	// Map iteration order is random; handlers are keyed by a counter
	// so sorting restores subscription order.
	sort.Ints(keys)
	fns := make([]func(T), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, e.handlers[k])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Clear drops all handlers. Fires already in flight complete.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = nil
}
