package quickinput

import (
	"github.com/lumenos/quickinput/internal/emitter"
	"github.com/lumenos/quickinput/internal/handles"
	"github.com/lumenos/quickinput/internal/types"
)

// Picker is the filterable list variant. Active and selected items are
// read-only externally; only inbound renderer events mutate them. The
// variant fields are guarded by the embedded session lock.
type Picker struct {
	*Session

	items              []types.Item
	canSelectMany      bool
	matchOnDescription bool
	matchOnDetail      bool
	active             []types.Item
	selected           []types.Item

	itemTable handles.Table[types.Item]

	onActive   emitter.Emitter[[]types.Item]
	onSelected emitter.Emitter[[]types.Item]
}

func newPicker(ctrl *Controller) *Picker {
	p := &Picker{Session: newSession(ctrl)}
	// Match-on flags default to true; record them in the buffer so the
	// first flush carries the full initial state.
	p.matchOnDescription = true
	p.matchOnDetail = true
	p.pending["matchOnDescription"] = true
	p.pending["matchOnDetail"] = true
	p.clearVariant = func() {
		p.onActive.Clear()
		p.onSelected.Clear()
	}
	return p
}

// SetItems replaces the picker's item list. All previously issued item
// handles are invalidated; the transformed list with fresh positional
// handles travels in the same coalesced update.
func (p *Picker) SetItems(items []types.Item) {
	transfer := types.TransferItems(items)
	p.set("items", transfer, func() {
		p.items = append([]types.Item(nil), items...)
		p.itemTable.Assign(items)
	})
}

// Items returns the current item list.
func (p *Picker) Items() []types.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Item(nil), p.items...)
}

// SetCanSelectMany toggles multi-selection.
func (p *Picker) SetCanSelectMany(v bool) {
	p.set("canSelectMany", v, func() { p.canSelectMany = v })
}

// SetMatchOnDescription includes item descriptions in filtering.
func (p *Picker) SetMatchOnDescription(v bool) {
	p.set("matchOnDescription", v, func() { p.matchOnDescription = v })
}

// SetMatchOnDetail includes item details in filtering.
func (p *Picker) SetMatchOnDetail(v bool) {
	p.set("matchOnDetail", v, func() { p.matchOnDetail = v })
}

// ActiveItems returns the items currently highlighted in the renderer.
func (p *Picker) ActiveItems() []types.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Item(nil), p.active...)
}

// SelectedItems returns the items currently selected in the renderer.
func (p *Picker) SelectedItems() []types.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Item(nil), p.selected...)
}

// OnDidChangeActive registers a handler for highlight changes.
func (p *Picker) OnDidChangeActive(fn func([]types.Item)) func() {
	return p.onActive.Subscribe(fn)
}

// OnDidChangeSelection registers a handler for selection changes.
func (p *Picker) OnDidChangeSelection(fn func([]types.Item)) func() {
	return p.onSelected.Subscribe(fn)
}

// handleActiveChanged resolves handles against the current item table,
// dropping any from a previous generation.
func (p *Picker) handleActiveChanged(hs []int) {
	resolved := p.itemTable.ResolveAll(hs)
	p.mu.Lock()
	p.active = resolved
	p.mu.Unlock()
	p.onActive.Fire(resolved)
}

func (p *Picker) handleSelectionChanged(hs []int) {
	resolved := p.itemTable.ResolveAll(hs)
	p.mu.Lock()
	p.selected = resolved
	p.mu.Unlock()
	p.onSelected.Fire(resolved)
}
