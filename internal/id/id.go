// Package id provides identifier generation for the quick-input core.
//
// Session ids are small process-unique integers assigned monotonically;
// they double as the key the renderer echoes back on every inbound
// event. One-shot request ids are prefixed ULIDs so concurrent pick and
// input flows multiplexed over one channel never collide and sort by
// creation time in logs.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for debugging and type identification.
const (
	PickPrefix  = "pick"
	InputPrefix = "input"
)

var sessionCounter atomic.Int64

// NextSession returns the next process-unique session id. Ids are
// assigned monotonically and never reused within a process.
func NextSession() int {
	return int(sessionCounter.Add(1))
}

// Generator generates prefixed ULIDs.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

func getDefault() *Generator {
	once.Do(func() {
		defaultGenerator = &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
	})
	return defaultGenerator
}

// New generates a ULID with the given prefix.
func (g *Generator) New(prefix string) string {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return fmt.Sprintf("%s_%s", prefix, u.String())
}

// NewPickRequest returns a request id for a one-shot pick flow.
func NewPickRequest() string {
	return getDefault().New(PickPrefix)
}

// NewInputRequest returns a request id for a one-shot input flow.
func NewInputRequest() string {
	return getDefault().New(InputPrefix)
}
