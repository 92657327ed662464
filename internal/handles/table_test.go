package handles

import "testing"

func TestAssignAndResolve(t *testing.T) {
	var tbl Table[string]
	tbl.Assign([]string{"a", "b", "c"})

	v, ok := tbl.Resolve(1)
	if !ok || v != "b" {
		t.Fatalf("Resolve(1) = %q, %v; want b, true", v, ok)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len = %d, want 3", tbl.Len())
	}
}

func TestResolveOutOfRange(t *testing.T) {
	var tbl Table[string]
	tbl.Assign([]string{"a"})

	if _, ok := tbl.Resolve(-1); ok {
		t.Error("negative handle should not resolve")
	}
	if _, ok := tbl.Resolve(1); ok {
		t.Error("out-of-range handle should not resolve")
	}
}

func TestReassignInvalidatesOldHandles(t *testing.T) {
	var tbl Table[string]
	tbl.Assign([]string{"a", "b", "c"})
	tbl.Assign([]string{"x"})

	if _, ok := tbl.Resolve(2); ok {
		t.Error("handle from previous generation should not resolve")
	}
	v, ok := tbl.Resolve(0)
	if !ok || v != "x" {
		t.Errorf("Resolve(0) = %q, %v; want new-generation value x", v, ok)
	}
}

func TestResolveAllSkipsStale(t *testing.T) {
	var tbl Table[int]
	tbl.Assign([]int{10, 20})

	got := tbl.ResolveAll([]int{0, 5, 1, -2})
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("ResolveAll = %v, want [10 20]", got)
	}
}
