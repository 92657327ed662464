// Package quickinput implements the session-oriented control protocol
// for remotely rendered quick-input widgets: a filterable picker and a
// single-line input box.
//
// Widget state lives here; the renderer in another process draws it.
// Property mutations on a session merge into a pending buffer and are
// coalesced into one outbound update per scheduler tick, except
// visibility changes, which flush immediately and cancel any pending
// deferred flush. Interaction events flow back over the same channel
// and are routed by session id; list entries and buttons are referred
// to across the process boundary by positional handles that are only
// valid until the owning list is reassigned.
//
// The Controller is the single entry and exit point. Alongside the
// session machinery it carries the legacy one-shot flows: show a list
// once and get a selection (or nothing), or prompt for a line of text
// with optional local validation.
//
// Example:
//
//	ctrl := quickinput.New(quickinput.WithLogger(logger))
//	ctrl.Attach(channel)
//
//	picker := ctrl.CreatePicker()
//	picker.SetItems(items)
//	picker.OnDidChangeSelection(func(sel []types.Item) { ... })
//	picker.Show()
package quickinput
