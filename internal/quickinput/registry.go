package quickinput

import (
	"sync"
	"sync/atomic"
)

// receiver is the inbound-event surface every session variant exposes.
type receiver interface {
	handleValueChanged(string)
	handleAccept()
	handleButtonClick(int)
	handleHidden()
}

// listReceiver is the extra surface picker sessions expose.
type listReceiver interface {
	handleActiveChanged([]int)
	handleSelectionChanged([]int)
}

// Registry is the process-wide session table. Entries are added when
// the controller creates a session and removed only by Dispose.
type Registry struct {
	sessions sync.Map
	active   atomic.Int64
	created  atomic.Int64
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a session under its id.
func (r *Registry) Register(id int, rcv receiver) {
	r.sessions.Store(id, rcv)
	r.active.Add(1)
	r.created.Add(1)
}

// Get retrieves a session by id.
func (r *Registry) Get(id int) (receiver, bool) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return val.(receiver), true
}

// Remove forgets a session. Removing an unknown id is harmless.
func (r *Registry) Remove(id int) {
	if _, loaded := r.sessions.LoadAndDelete(id); loaded {
		r.active.Add(-1)
	}
}

// Stats contains registry statistics.
type Stats struct {
	Active  int `json:"active"`
	Created int `json:"created"`
}

// Stats returns current registry statistics.
func (r *Registry) Stats() Stats {
	return Stats{
		Active:  int(r.active.Load()),
		Created: int(r.created.Load()),
	}
}
