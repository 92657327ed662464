// Package handles maps small integer handles to local objects for
// cross-process reference. A handle is the object's position in its
// list at the time of the most recent bulk assignment; reassigning the
// list invalidates every previously issued handle.
package handles

import "sync"

// Table is a generation-scoped handle table for one list.
type Table[T any] struct {
	mu    sync.RWMutex
	items []T
}

// Assign replaces the whole table with items; handle = index. Prior
// entries are discarded wholesale, never patched incrementally.
func (t *Table[T]) Assign(items []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = make([]T, len(items))
	copy(t.items, items)
}

// Resolve looks up a handle. Stale or out-of-range handles report
// not-found rather than aborting the caller.
func (t *Table[T]) Resolve(handle int) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if handle < 0 || handle >= len(t.items) {
		var zero T
		return zero, false
	}
	return t.items[handle], true
}

// ResolveAll resolves a batch of handles, silently skipping any that
// no longer exist.
func (t *Table[T]) ResolveAll(hs []int) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(hs))
	for _, h := range hs {
		if h >= 0 && h < len(t.items) {
			out = append(out, t.items[h])
		}
	}
	return out
}

// Len reports the current table size.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}
