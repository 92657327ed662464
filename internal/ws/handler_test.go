package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenos/quickinput/internal/logging"
	"github.com/lumenos/quickinput/internal/quickinput"
	"github.com/lumenos/quickinput/internal/types"
)

func newTestServer(t *testing.T) (*quickinput.Controller, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := quickinput.New()
	t.Cleanup(ctrl.Close)

	handler := NewHandler(ctrl, logging.NewNop(), nil, DefaultConfig())
	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return ctrl, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestConnectionRoundTrip(t *testing.T) {
	ctrl, srv := newTestServer(t)
	conn := dial(t, srv)

	// Welcome frame arrives first.
	var welcome map[string]any
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "system", welcome["type"])

	box := ctrl.CreateInputBox()
	got := make(chan string, 1)
	box.OnDidChangeValue(func(v string) { got <- v })

	payload, err := sonic.Marshal(types.Inbound{
		Type:      types.MsgValueChanged,
		SessionID: box.ID(),
		Value:     "typed",
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))

	select {
	case v := <-got:
		assert.Equal(t, "typed", v)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound event never reached the session")
	}
}

func TestOutboundUpdatesReachRenderer(t *testing.T) {
	ctrl, srv := newTestServer(t)
	conn := dial(t, srv)

	var welcome map[string]any
	require.NoError(t, conn.ReadJSON(&welcome))

	box := ctrl.CreateInputBox()
	box.SetValue("hello")
	box.Show()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var update map[string]any
	require.NoError(t, conn.ReadJSON(&update))

	assert.Equal(t, types.MsgUpdate, update["type"])
	set, ok := update["set"].(map[string]any)
	require.True(t, ok, "update missing set payload: %v", update)
	assert.Equal(t, true, set["visible"])
	assert.Equal(t, "hello", set["value"])
}

func TestNewerConnectionReplacesOlder(t *testing.T) {
	ctrl, srv := newTestServer(t)

	conn1 := dial(t, srv)
	var welcome map[string]any
	require.NoError(t, conn1.ReadJSON(&welcome))

	conn2 := dial(t, srv)
	require.NoError(t, conn2.ReadJSON(&welcome))

	box := ctrl.CreateInputBox()
	box.Show()

	// Outbound traffic goes to the newer connection only.
	conn2.SetReadDeadline(time.Now().Add(2 * time.Second))
	var update map[string]any
	require.NoError(t, conn2.ReadJSON(&update))
	assert.Equal(t, types.MsgUpdate, update["type"])

	// The replaced connection was closed server-side.
	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn1.ReadMessage()
	assert.Error(t, err)
}

func TestMalformedFrameIsTolerated(t *testing.T) {
	ctrl, srv := newTestServer(t)
	conn := dial(t, srv)

	var welcome map[string]any
	require.NoError(t, conn.ReadJSON(&welcome))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	// The connection must survive: a well-formed event after the bad
	// frame still dispatches.
	box := ctrl.CreateInputBox()
	got := make(chan struct{}, 1)
	box.OnDidAccept(func() { got <- struct{}{} })

	payload, _ := sonic.Marshal(types.Inbound{Type: types.MsgAccept, SessionID: box.ID()})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("connection did not survive a malformed frame")
	}
}
