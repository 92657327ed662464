package quickinput

import (
	"sync"

	"github.com/lumenos/quickinput/internal/emitter"
	"github.com/lumenos/quickinput/internal/handles"
	"github.com/lumenos/quickinput/internal/id"
	"github.com/lumenos/quickinput/internal/sched"
	"github.com/lumenos/quickinput/internal/types"
)

// Session is the shared state machine behind both widget variants. It
// owns the mutable presentation state, the pending-update buffer, the
// local event emitters, and the lifecycle (created -> shown <-> hidden
// -> disposed). Variant-specific fields live in Picker and InputBox,
// which compose around this engine.
type Session struct {
	id   int
	ctrl *Controller

	mu             sync.Mutex
	visible        bool
	enabled        bool
	busy           bool
	ignoreFocusOut bool
	value          string
	placeholder    *string
	buttons        []types.Button
	pending        map[string]any
	flushTick      *sched.Tick
	flushQueued    bool
	disposed       bool

	buttonTable handles.Table[types.Button]

	onValue  emitter.Emitter[string]
	onAccept emitter.Emitter[struct{}]
	onButton emitter.Emitter[types.Button]
	onHide   emitter.Emitter[struct{}]

	// clearVariant releases variant-specific subscriptions on dispose.
	clearVariant func()
}

func newSession(ctrl *Controller) *Session {
	return &Session{
		id:             id.NextSession(),
		ctrl:           ctrl,
		enabled:        true,
		ignoreFocusOut: true,
		pending:        make(map[string]any),
	}
}

// ID returns the process-unique session id.
func (s *Session) ID() int {
	return s.id
}

// set merges one key into the pending buffer (last writer wins) and,
// if the widget is visible, schedules a single coalesced flush on the
// next scheduler tick. apply runs under the session lock so the local
// field and the buffer change atomically. Mutating a disposed session
// is a no-op.
func (s *Session) set(key string, val any, apply func()) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	if apply != nil {
		apply()
	}
	s.pending[key] = val
	schedule := s.visible && !s.flushQueued
	if schedule {
		s.flushQueued = true
	}
	s.mu.Unlock()

	if m := s.ctrl.metrics; m != nil {
		m.MutationsBuffered.Inc()
	}
	if !schedule {
		return
	}

	// Posting must happen outside the session lock: it can block on a
	// full task queue while the loop is waiting for this same lock.
	tick, err := s.ctrl.loop.Defer(s.flushCoalesced)
	s.mu.Lock()
	switch {
	case err != nil:
		s.flushQueued = false
	case s.flushQueued:
		s.flushTick = tick
	default:
		// A visibility change or dispose won the race; the queued
		// flush would find nothing to do.
		tick.Cancel()
	}
	s.mu.Unlock()
}

// flushCoalesced runs on the scheduler loop and sends the buffered
// patch as one update message.
func (s *Session) flushCoalesced() {
	s.mu.Lock()
	s.flushQueued = false
	s.flushTick = nil
	if s.disposed || len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	patch := s.pending
	s.pending = make(map[string]any)
	s.mu.Unlock()

	s.ctrl.sendNow(types.NewUpdateMessage(s.id, patch), "coalesced")
}

// Show makes the widget visible. The visibility change flushes
// immediately together with everything buffered while hidden,
// bypassing coalescing: any pending deferred flush is cancelled so the
// visibility update is observed first.
func (s *Session) Show() {
	s.setVisible(true)
}

// Hide removes the widget from the screen. The session stays live and
// can be shown again; only Dispose releases the remote resource.
func (s *Session) Hide() {
	s.setVisible(false)
}

func (s *Session) setVisible(v bool) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.visible = v
	if s.flushTick != nil {
		s.flushTick.Cancel()
		if m := s.ctrl.metrics; m != nil {
			m.FlushesCancelled.Inc()
		}
	}
	s.flushTick = nil
	s.flushQueued = false
	patch := s.pending
	s.pending = make(map[string]any)
	patch["visible"] = v
	s.mu.Unlock()

	s.ctrl.post(types.NewUpdateMessage(s.id, patch), "visibility")
}

// Dispose tears the session down: it synthesizes a local hide event,
// drops all event subscriptions, cancels any pending flush, forgets
// the session in the registry, and issues exactly one remote destroy.
// Idempotent, and safe to call from within the session's own event
// callbacks.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	if s.flushTick != nil {
		s.flushTick.Cancel()
		s.flushTick = nil
	}
	s.flushQueued = false
	s.pending = nil
	s.mu.Unlock()

	s.onHide.Fire(struct{}{})
	s.onValue.Clear()
	s.onAccept.Clear()
	s.onButton.Clear()
	s.onHide.Clear()
	if s.clearVariant != nil {
		s.clearVariant()
	}

	s.ctrl.forget(s.id)
	s.ctrl.post(types.NewDestroyMessage(s.id), "destroy")
}

// SetValue sets the widget's input value.
func (s *Session) SetValue(v string) {
	s.set("value", v, func() { s.value = v })
}

// Value returns the current input value as last mutated locally or
// reported by the renderer.
func (s *Session) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// SetPlaceholder sets the placeholder text; nil clears it remotely.
func (s *Session) SetPlaceholder(p *string) {
	if p == nil {
		s.set("placeholder", nil, func() { s.placeholder = nil })
		return
	}
	v := *p
	s.set("placeholder", v, func() { s.placeholder = &v })
}

// SetEnabled toggles whether the widget accepts input.
func (s *Session) SetEnabled(v bool) {
	s.set("enabled", v, func() { s.enabled = v })
}

// SetBusy toggles the widget's progress indicator.
func (s *Session) SetBusy(v bool) {
	s.set("busy", v, func() { s.busy = v })
}

// SetIgnoreFocusOut controls whether the widget stays open when it
// loses focus.
func (s *Session) SetIgnoreFocusOut(v bool) {
	s.set("ignoreFocusOut", v, func() { s.ignoreFocusOut = v })
}

// SetButtons replaces the button row. The whole handle table is
// reassigned, so handles issued for the previous buttons are
// invalidated; the transformed descriptor list travels in the same
// coalesced update as the raw change.
func (s *Session) SetButtons(buttons []types.Button) {
	transfer := types.TransferButtons(buttons)
	s.set("buttons", transfer, func() {
		s.buttons = append([]types.Button(nil), buttons...)
		s.buttonTable.Assign(buttons)
	})
}

// Visible reports whether the widget is currently shown.
func (s *Session) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Disposed reports whether the session has been torn down.
func (s *Session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// OnDidChangeValue registers a handler for renderer-reported value
// edits. The returned function unsubscribes.
func (s *Session) OnDidChangeValue(fn func(string)) func() {
	return s.onValue.Subscribe(fn)
}

// OnDidAccept registers a handler for the accept gesture.
func (s *Session) OnDidAccept(fn func()) func() {
	return s.onAccept.Subscribe(func(struct{}) { fn() })
}

// OnDidTriggerButton registers a handler receiving the resolved button
// descriptor when the renderer reports a button press.
func (s *Session) OnDidTriggerButton(fn func(types.Button)) func() {
	return s.onButton.Subscribe(fn)
}

// OnDidHide registers a handler for hide events, both renderer-driven
// and the one synthesized by Dispose.
func (s *Session) OnDidHide(fn func()) func() {
	return s.onHide.Subscribe(func(struct{}) { fn() })
}

// Inbound handlers below run on the scheduler loop, dispatched by the
// controller.

func (s *Session) handleValueChanged(v string) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
	s.onValue.Fire(v)
}

func (s *Session) handleAccept() {
	s.onAccept.Fire(struct{}{})
}

// handleButtonClick resolves the handle against the current button
// table. A stale or unknown handle is a tolerated protocol
// inconsistency and is silently ignored.
func (s *Session) handleButtonClick(handle int) {
	if b, ok := s.buttonTable.Resolve(handle); ok {
		s.onButton.Fire(b)
	}
}

// handleHidden fires the local hide notification only. Hide is a UI
// event, not a lifecycle transition; the session remains usable until
// Dispose.
func (s *Session) handleHidden() {
	s.onHide.Fire(struct{}{})
}
