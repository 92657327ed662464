package emitter

import "testing"

func TestFireReachesAllHandlers(t *testing.T) {
	var e Emitter[string]
	var got []string

	e.Subscribe(func(v string) { got = append(got, "a:"+v) })
	e.Subscribe(func(v string) { got = append(got, "b:"+v) })
	e.Fire("x")

	if len(got) != 2 || got[0] != "a:x" || got[1] != "b:x" {
		t.Fatalf("unexpected dispatch: %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	var e Emitter[int]
	var count int

	cancel := e.Subscribe(func(int) { count++ })
	e.Fire(1)
	cancel()
	cancel() // second cancel is harmless
	e.Fire(2)

	if count != 1 {
		t.Errorf("expected 1 invocation, got %d", count)
	}
}

func TestUnsubscribeFromWithinHandler(t *testing.T) {
	var e Emitter[int]
	var count int

	var cancel func()
	cancel = e.Subscribe(func(int) {
		count++
		cancel()
	})
	e.Fire(1)
	e.Fire(2)

	if count != 1 {
		t.Errorf("expected self-unsubscribing handler to run once, got %d", count)
	}
}

func TestClear(t *testing.T) {
	var e Emitter[int]
	var count int

	e.Subscribe(func(int) { count++ })
	e.Clear()
	e.Fire(1)

	if count != 0 {
		t.Errorf("expected no invocations after Clear, got %d", count)
	}
}
