package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// echoHandler devolve cada mensagem para quem a enviou.
type echoHandler struct {
	hub          *Hub
	connected    chan string
	disconnected chan string
}

func newEchoHandler(hub *Hub) *echoHandler {
	return &echoHandler{
		hub:          hub,
		connected:    make(chan string, 8),
		disconnected: make(chan string, 8),
	}
}

func (e *echoHandler) OnConnect(c *Client)    { e.connected <- c.ID() }
func (e *echoHandler) OnDisconnect(c *Client) { e.disconnected <- c.ID() }
func (e *echoHandler) OnMessage(c *Client, msg Message) {
	e.hub.SendTo(c.ID(), msg)
}

func startHub(t *testing.T) (*Hub, *echoHandler, string) {
	t.Helper()
	hub := NewHub(hclog.NewNullLogger())
	handler := newEchoHandler(hub)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx, handler)

	srv := httptest.NewServer(NewServer(hub, nil))
	t.Cleanup(srv.Close)
	return hub, handler, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitFor):
		require.FailNow(t, "timed out waiting for hub event")
	}
	var zero T
	return zero
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_RoundTrip(t *testing.T) {
	_, handler, url := startHub(t)
	conn := dial(t, url)

	id := receive(t, handler.connected)
	assert.NotEmpty(t, id)

	out, err := NewMessage("joinRoom", map[string]string{"roomId": "r1"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(out))

	in := readMessage(t, conn)
	assert.Equal(t, "joinRoom", in.Type)
	assert.JSONEq(t, `{"roomId":"r1"}`, string(in.Payload))

	require.NoError(t, conn.Close())
	assert.Equal(t, id, receive(t, handler.disconnected))
}

func TestHub_BroadcastAndPost(t *testing.T) {
	hub, handler, url := startHub(t)
	c1 := dial(t, url)
	c2 := dial(t, url)
	receive(t, handler.connected)
	receive(t, handler.connected)

	msg, err := NewMessage("activeRoomsList", map[string][]string{"rooms": {"r1"}})
	require.NoError(t, err)

	ran := make(chan struct{})
	require.True(t, hub.Post(func() {
		hub.Broadcast(msg)
		close(ran)
	}))
	receive(t, ran)

	for _, c := range []*websocket.Conn{c1, c2} {
		got := readMessage(t, c)
		assert.Equal(t, "activeRoomsList", got.Type)
	}
}

func TestHub_SendToUnknownIsIgnored(t *testing.T) {
	hub, _, _ := startHub(t)
	done := make(chan struct{})
	require.True(t, hub.Post(func() {
		hub.SendTo("nobody", Message{Type: "x"})
		close(done)
	}))
	receive(t, done)
}

func TestHub_PostAfterStop(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx, newEchoHandler(hub))
		close(stopped)
	}()

	cancel()
	receive(t, stopped)
	assert.False(t, hub.Post(func() {}))
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("goToLobby", nil)
	require.NoError(t, err)
	assert.Equal(t, Message{Type: "goToLobby"}, msg)

	_, err = NewMessage("bad", func() {})
	assert.Error(t, err)
}
