package quickinput

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lumenos/quickinput/internal/logging"
	"github.com/lumenos/quickinput/internal/monitoring"
	"github.com/lumenos/quickinput/internal/sched"
	"github.com/lumenos/quickinput/internal/transport"
	"github.com/lumenos/quickinput/internal/types"
)

// Controller is the proxy facade: it owns the session registry and the
// scheduler loop, creates sessions, serializes all outbound sends, and
// routes every inbound protocol event to the right session or pending
// one-shot flow.
type Controller struct {
	loop    *sched.Loop
	reg     *Registry
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	channel transport.Channel
	picks   map[string]*pickState
	inputs  map[string]*inputState

	queueSize int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithMetrics wires a metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithQueueSize sizes the scheduler loop's task queue.
func WithQueueSize(n int) Option {
	return func(c *Controller) { c.queueSize = n }
}

// New creates a controller with no renderer attached yet.
func New(opts ...Option) *Controller {
	c := &Controller{
		reg:    NewRegistry(),
		log:    logging.NewNop(),
		picks:  make(map[string]*pickState),
		inputs: make(map[string]*inputState),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.loop = sched.NewLoop(c.queueSize)
	return c
}

// Attach binds the renderer channel. Only one renderer is attached at
// a time; a new attachment replaces the previous one.
func (c *Controller) Attach(ch transport.Channel) {
	c.mu.Lock()
	c.channel = ch
	c.mu.Unlock()
	c.log.Info("renderer attached")
}

// Detach drops the renderer channel. Subsequent sends fail fast and
// are logged, never raised.
func (c *Controller) Detach() {
	c.mu.Lock()
	c.channel = nil
	c.mu.Unlock()
	c.log.Info("renderer detached")
}

// Close shuts down the scheduler loop after draining queued work.
func (c *Controller) Close() {
	c.loop.Close()
}

// Barrier blocks until all previously queued scheduler work, including
// deferred flushes, has run.
func (c *Controller) Barrier() {
	c.loop.Barrier()
}

// CreatePicker creates a picker session and registers it under its id.
func (c *Controller) CreatePicker() *Picker {
	p := newPicker(c)
	c.register(p.ID(), p)
	return p
}

// CreateInputBox creates an input-box session and registers it.
func (c *Controller) CreateInputBox() *InputBox {
	b := newInputBox(c)
	c.register(b.ID(), b)
	return b
}

// Stats returns session registry statistics.
func (c *Controller) Stats() Stats {
	return c.reg.Stats()
}

func (c *Controller) register(id int, rcv receiver) {
	c.reg.Register(id, rcv)
	if c.metrics != nil {
		c.metrics.SessionsCreated.Inc()
		c.metrics.SessionsActive.Inc()
	}
	c.log.Debug("session created", zap.Int("session_id", id))
}

func (c *Controller) forget(id int) {
	c.reg.Remove(id)
	if c.metrics != nil {
		c.metrics.SessionsActive.Dec()
	}
	c.log.Debug("session disposed", zap.Int("session_id", id))
}

// post queues msg for sending on the scheduler loop, preserving order
// with flushes queued before it.
func (c *Controller) post(msg any, kind string) {
	if err := c.loop.Post(func() { c.sendNow(msg, kind) }); err != nil {
		c.log.Warn("dropping outbound message, scheduler closed", zap.String("kind", kind))
	}
}

// sendNow writes msg to the attached channel. Runs on the scheduler
// loop, which serializes all outbound traffic. Sending while detached
// fails fast with transport.ErrDetached; the failure is logged, never
// raised to widget callers.
func (c *Controller) sendNow(msg any, kind string) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()

	if ch == nil {
		if c.metrics != nil {
			c.metrics.SendFailures.Inc()
		}
		c.log.Warn("dropping outbound message", zap.String("kind", kind), zap.Error(transport.ErrDetached))
		return transport.ErrDetached
	}
	if err := ch.Send(msg); err != nil {
		if c.metrics != nil {
			c.metrics.SendFailures.Inc()
		}
		c.log.Error("outbound send failed", zap.String("kind", kind), zap.Error(err))
		return err
	}
	if c.metrics != nil && (kind == "coalesced" || kind == "visibility") {
		c.metrics.UpdatesSent.WithLabelValues(kind).Inc()
	}
	return nil
}

// HandleInbound routes one renderer event. Dispatch happens on the
// scheduler loop in the order the transport delivered the events; this
// core performs no reordering or deduplication.
func (c *Controller) HandleInbound(msg types.Inbound) {
	if err := c.loop.Post(func() { c.dispatch(msg) }); err != nil {
		c.log.Warn("dropping inbound event, scheduler closed", zap.String("type", msg.Type))
	}
}

func (c *Controller) dispatch(msg types.Inbound) {
	if c.metrics != nil {
		c.metrics.EventsDispatched.WithLabelValues(msg.Type).Inc()
	}

	switch msg.Type {
	case types.MsgValueChanged:
		if rcv, ok := c.reg.Get(msg.SessionID); ok {
			rcv.handleValueChanged(msg.Value)
		} else {
			c.dropped(msg)
		}
	case types.MsgAccept:
		if rcv, ok := c.reg.Get(msg.SessionID); ok {
			rcv.handleAccept()
		} else {
			c.dropped(msg)
		}
	case types.MsgButtonClick:
		rcv, ok := c.reg.Get(msg.SessionID)
		if !ok || msg.Handle == nil {
			c.dropped(msg)
			return
		}
		rcv.handleButtonClick(*msg.Handle)
	case types.MsgHidden:
		if rcv, ok := c.reg.Get(msg.SessionID); ok {
			rcv.handleHidden()
		} else {
			c.dropped(msg)
		}
	case types.MsgActiveChanged:
		if rcv, ok := c.reg.Get(msg.SessionID); ok {
			if lr, ok := rcv.(listReceiver); ok {
				lr.handleActiveChanged(msg.Handles)
				return
			}
		}
		c.dropped(msg)
	case types.MsgSelectionChanged:
		if rcv, ok := c.reg.Get(msg.SessionID); ok {
			if lr, ok := rcv.(listReceiver); ok {
				lr.handleSelectionChanged(msg.Handles)
				return
			}
		}
		c.dropped(msg)
	case types.MsgPickResult, types.MsgPickActive:
		c.dispatchPick(msg)
	case types.MsgInputResult, types.MsgValidate:
		c.dispatchInput(msg)
	default:
		c.log.Debug("unknown inbound message type", zap.String("type", msg.Type))
		c.dropped(msg)
	}
}

// dropped records a tolerated protocol inconsistency: an event for an
// unknown session, a missing handle, or an unknown type. Best-effort
// UI events are ignored rather than treated as correctness violations.
func (c *Controller) dropped(msg types.Inbound) {
	if c.metrics != nil {
		c.metrics.EventsDropped.Inc()
	}
	c.log.Debug("ignoring inbound event",
		zap.String("type", msg.Type),
		zap.Int("session_id", msg.SessionID))
}
