package quickinput

import (
	"testing"

	"github.com/lumenos/quickinput/internal/types"
)

func TestSetItemsTravelsWithHandles(t *testing.T) {
	ctrl, mem := newTestController(t)
	p := ctrl.CreatePicker()
	p.Show()
	ctrl.Barrier()
	mem.Reset()

	p.SetItems([]types.Item{{Label: "a"}, {Label: "b"}})
	ctrl.Barrier()

	ups := updates(mem)
	if len(ups) != 1 {
		t.Fatalf("expected one update, got %d", len(ups))
	}
	items, ok := ups[0].Set["items"].([]types.TransferItem)
	if !ok {
		t.Fatalf("items patch has wrong type: %T", ups[0].Set["items"])
	}
	if len(items) != 2 || items[0].Handle != 0 || items[1].Handle != 1 {
		t.Errorf("positional handles wrong: %+v", items)
	}
}

func TestFirstShowCarriesMatchOnDefaults(t *testing.T) {
	ctrl, mem := newTestController(t)
	p := ctrl.CreatePicker()
	p.Show()
	ctrl.Barrier()

	ups := updates(mem)
	if len(ups) != 1 {
		t.Fatalf("expected one update, got %d", len(ups))
	}
	set := ups[0].Set
	if set["matchOnDescription"] != true || set["matchOnDetail"] != true {
		t.Errorf("match-on flags should default to true: %v", set)
	}
}

func TestStaleItemHandleResolvesToNothing(t *testing.T) {
	ctrl, _ := newTestController(t)
	p := ctrl.CreatePicker()

	var fired [][]types.Item
	p.OnDidChangeSelection(func(sel []types.Item) { fired = append(fired, sel) })

	p.SetItems([]types.Item{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	p.SetItems([]types.Item{{Label: "x"}})

	ctrl.HandleInbound(types.Inbound{
		Type:      types.MsgSelectionChanged,
		SessionID: p.ID(),
		Handles:   []int{2},
	})
	ctrl.Barrier()

	if len(fired) != 1 || len(fired[0]) != 0 {
		t.Fatalf("stale handle must resolve to no item, got %v", fired)
	}
	if got := p.SelectedItems(); len(got) != 0 {
		t.Errorf("selected items should be empty, got %v", got)
	}
}

func TestSelectionResolvesCurrentGeneration(t *testing.T) {
	ctrl, _ := newTestController(t)
	p := ctrl.CreatePicker()
	p.SetItems([]types.Item{{Label: "x"}, {Label: "y"}})

	ctrl.HandleInbound(types.Inbound{
		Type:      types.MsgSelectionChanged,
		SessionID: p.ID(),
		Handles:   []int{1, 0},
	})
	ctrl.Barrier()

	got := p.SelectedItems()
	if len(got) != 2 || got[0].Label != "y" || got[1].Label != "x" {
		t.Errorf("selection resolved wrong: %v", got)
	}
}

func TestActiveItemsUpdatedByInboundOnly(t *testing.T) {
	ctrl, _ := newTestController(t)
	p := ctrl.CreatePicker()
	p.SetItems([]types.Item{{Label: "a"}, {Label: "b"}})

	var active []types.Item
	p.OnDidChangeActive(func(items []types.Item) { active = items })

	ctrl.HandleInbound(types.Inbound{
		Type:      types.MsgActiveChanged,
		SessionID: p.ID(),
		Handles:   []int{0},
	})
	ctrl.Barrier()

	if len(active) != 1 || active[0].Label != "a" {
		t.Errorf("active handler got %v", active)
	}
	if got := p.ActiveItems(); len(got) != 1 || got[0].Label != "a" {
		t.Errorf("ActiveItems = %v", got)
	}
}

func TestPickerListEventsIgnoredForInputBox(t *testing.T) {
	ctrl, _ := newTestController(t)
	box := ctrl.CreateInputBox()

	ctrl.HandleInbound(types.Inbound{
		Type:      types.MsgActiveChanged,
		SessionID: box.ID(),
		Handles:   []int{0},
	})
	ctrl.Barrier()
	// No panic means the event was tolerated and dropped.
}

func TestRegistryStats(t *testing.T) {
	ctrl, _ := newTestController(t)

	p := ctrl.CreatePicker()
	b := ctrl.CreateInputBox()

	stats := ctrl.Stats()
	if stats.Active != 2 || stats.Created != 2 {
		t.Errorf("stats = %+v, want 2 active / 2 created", stats)
	}

	p.Dispose()
	b.Dispose()
	ctrl.Barrier()

	stats = ctrl.Stats()
	if stats.Active != 0 || stats.Created != 2 {
		t.Errorf("stats after dispose = %+v, want 0 active / 2 created", stats)
	}
}
