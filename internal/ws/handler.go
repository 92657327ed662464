package ws

import (
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lumenos/quickinput/internal/logging"
	"github.com/lumenos/quickinput/internal/monitoring"
	"github.com/lumenos/quickinput/internal/quickinput"
	"github.com/lumenos/quickinput/internal/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Renderer runs on a different local origin in dev
	},
}

// Config tunes the inbound event rate limiter.
type Config struct {
	EventsPerSecond int
	Burst           int
	RateLimit       bool
}

// DefaultConfig returns the limiter settings used when none are given.
func DefaultConfig() Config {
	return Config{
		EventsPerSecond: 200,
		Burst:           400,
		RateLimit:       true,
	}
}

// Handler upgrades renderer connections and bridges them to the
// controller. Only one renderer is attached at a time; a newer
// connection replaces the previous one.
type Handler struct {
	ctrl    *quickinput.Controller
	log     *logging.Logger
	metrics *monitoring.Metrics
	cfg     Config

	mu      sync.Mutex
	current *renderer
}

// NewHandler creates a WebSocket handler bound to ctrl.
func NewHandler(ctrl *quickinput.Controller, log *logging.Logger, metrics *monitoring.Metrics, cfg Config) *Handler {
	return &Handler{
		ctrl:    ctrl,
		log:     log.Component("ws"),
		metrics: metrics,
		cfg:     cfg,
	}
}

// HandleConnection handles WebSocket upgrade and the read loop for one
// renderer connection.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	r := &renderer{
		id:   uuid.NewString(),
		conn: conn,
	}
	h.adopt(r)
	defer h.release(r)

	r.Send(map[string]any{
		"type":    "system",
		"message": "connected to quick-input service",
	})

	var limiter *rate.Limiter
	if h.cfg.RateLimit {
		limiter = rate.NewLimiter(rate.Limit(h.cfg.EventsPerSecond), h.cfg.Burst)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("renderer read error", zap.String("conn_id", r.id), zap.Error(err))
			}
			return
		}

		var msg types.Inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.log.Warn("malformed inbound event", zap.String("conn_id", r.id), zap.Error(err))
			continue
		}

		if limiter != nil && !limiter.Allow() {
			if h.metrics != nil {
				h.metrics.EventsDropped.Inc()
			}
			h.log.Warn("inbound event rate limit exceeded",
				zap.String("conn_id", r.id),
				zap.String("type", msg.Type))
			continue
		}

		h.ctrl.HandleInbound(msg)
	}
}

// adopt makes r the attached renderer, closing any previous connection.
// The controller attachment happens under the handler lock so two
// concurrent upgrades cannot attach out of order with respect to the
// current-connection bookkeeping.
func (h *Handler) adopt(r *renderer) {
	h.mu.Lock()
	prev := h.current
	h.current = r
	h.ctrl.Attach(r)
	h.mu.Unlock()

	if prev != nil {
		h.log.Info("replacing attached renderer", zap.String("old_conn_id", prev.id))
		prev.close()
	}

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
	}
	h.log.Info("renderer connected", zap.String("conn_id", r.id))
}

// release detaches r if it is still the active renderer. A connection
// that was already replaced only cleans up after itself; the detach
// runs under the handler lock so it cannot strip a newer attachment.
func (h *Handler) release(r *renderer) {
	r.close()

	h.mu.Lock()
	if h.current == r {
		h.current = nil
		h.ctrl.Detach()
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSConnections.Dec()
	}
	h.log.Info("renderer disconnected", zap.String("conn_id", r.id))
}

// renderer is a transport.Channel over one WebSocket connection.
// Writes are serialized with a mutex; gorilla connections allow only
// one concurrent writer.
type renderer struct {
	id string

	wmu  sync.Mutex
	conn *websocket.Conn

	closeOnce sync.Once
}

// Send encodes msg and writes it as one text frame.
func (r *renderer) Send(msg any) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}

	r.wmu.Lock()
	defer r.wmu.Unlock()
	return r.conn.WriteMessage(websocket.TextMessage, data)
}

func (r *renderer) close() {
	r.closeOnce.Do(func() {
		r.conn.Close()
	})
}
