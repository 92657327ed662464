package id

import (
	"strings"
	"sync"
	"testing"
)

func TestNextSessionMonotonic(t *testing.T) {
	a := NextSession()
	b := NextSession()
	if b <= a {
		t.Errorf("expected monotonic ids, got %d then %d", a, b)
	}
}

func TestNextSessionConcurrent(t *testing.T) {
	const n = 100
	ids := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- NextSession()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate session id %d", id)
		}
		seen[id] = true
	}
}

func TestRequestIDPrefixes(t *testing.T) {
	pick := NewPickRequest()
	if !strings.HasPrefix(pick, "pick_") {
		t.Errorf("pick request id missing prefix: %s", pick)
	}

	input := NewInputRequest()
	if !strings.HasPrefix(input, "input_") {
		t.Errorf("input request id missing prefix: %s", input)
	}

	if NewPickRequest() == NewPickRequest() {
		t.Error("request ids should be unique")
	}
}
