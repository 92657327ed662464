// Package sched provides the single-threaded cooperative scheduler the
// session machinery runs on.
//
// All session flushes and inbound event dispatch execute on one loop
// goroutine, so outbound messages for a session are serialized without
// per-session locking. Deferred work scheduled with Defer runs on the
// next free tick (after everything already queued) and can be cancelled
// before it runs, which is how visibility flushes overtake pending
// coalesced flushes.
package sched

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when posting to a closed loop.
var ErrClosed = errors.New("scheduler loop is closed")

// DefaultQueueSize is the task buffer used when none is configured.
const DefaultQueueSize = 256

// Loop is a single-goroutine task executor.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
	wg     sync.WaitGroup
}

// NewLoop creates and starts a loop with the given task buffer.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	l := &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}

	l.wg.Add(1)
	go l.run()

	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			// Drain whatever was queued before close.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post enqueues fn to run on the loop goroutine in FIFO order.
func (l *Loop) Post(fn func()) error {
	if l.closed.Load() {
		return ErrClosed
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Tick is a handle to a deferred task. Cancel prevents the task from
// running if it has not started yet.
type Tick struct {
	cancelled atomic.Bool
}

// Cancel marks the tick so its task becomes a no-op.
func (t *Tick) Cancel() {
	t.cancelled.Store(true)
}

// Defer schedules fn to run on the next free tick of the loop, after
// all currently queued tasks. The returned Tick cancels it.
func (l *Loop) Defer(fn func()) (*Tick, error) {
	t := &Tick{}
	err := l.Post(func() {
		if t.cancelled.Load() {
			return
		}
		fn()
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Barrier blocks until every task posted before it has run. Used by
// callers that need deterministic observation of deferred flushes.
func (l *Loop) Barrier() {
	ch := make(chan struct{})
	if err := l.Post(func() { close(ch) }); err != nil {
		return
	}
	select {
	case <-ch:
	case <-l.done:
	}
}

// Close stops the loop after draining queued tasks. Idempotent.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
	l.wg.Wait()
}
