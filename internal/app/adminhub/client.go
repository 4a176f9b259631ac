package adminhub

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"hzchat/internal/pkg/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client is one connected admin dashboard WebSocket. It never sends anything
// the hub acts on — ReadPump exists only to drive the pong handler and detect
// the peer going away, matching how a read-only push subscriber behaves.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	logger zerolog.Logger
}

// NewClient wraps an upgraded WebSocket connection for registration with hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		logger: logx.Logger().With().Str("component", "adminhub_client").Logger(),
	}
}

// ReadPump discards inbound frames and exits (unregistering from the hub)
// once the connection errors or closes.
func (c *Client) ReadPump() {
	defer c.hub.Unregister(c)
	defer func() { _ = c.conn.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump drains c.send to the WebSocket connection and pings on idle.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer func() { _ = c.conn.Close() }()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
