/*
Package adminhub implements the optional admin dashboard's WebSocket push
channel: a single, server-wide hub that pushes periodic occupancy snapshots
and operator announcements to every connected dashboard. The chat domain
(internal/app/chat) keeps its registries behind plain mutexes instead; this
hub's job is the one-to-many fan-out a channel-actor pattern suits well.
*/
package adminhub

import (
	"context"
	"sync"
	"time"

	"hzchat/internal/pkg/logx"

	"github.com/rs/zerolog"
)

const broadcastChannelBuffer = 64

// Hub fans out JSON payloads to every connected dashboard client.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	closed     chan struct{}

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub returns an idle Hub; call Run to start its event loop.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastChannelBuffer),
		closed:     make(chan struct{}),
		logger:     logx.Logger().With().Str("component", "adminhub").Logger(),
	}
}

// Run is the hub's event loop; it returns when ctx is canceled. statsFn,
// sampled every interval, feeds the periodic occupancy snapshot pushed to
// every connected dashboard.
func (h *Hub) Run(ctx context.Context, interval time.Duration, statsFn func() ([]byte, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
			}
			h.clients = make(map[*Client]struct{})
			h.mu.Unlock()
			close(h.closed)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Info().Int("dashboard_clients", len(h.clients)).Msg("Dashboard client connected.")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case payload := <-h.broadcast:
			h.deliver(payload)

		case <-ticker.C:
			payload, err := statsFn()
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to build stats snapshot for dashboard push.")
				continue
			}
			h.deliver(payload)
		}
	}
}

func (h *Hub) deliver(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn().Msg("Dashboard client send channel full, dropping snapshot for it.")
		}
	}
}

// Broadcast queues an arbitrary payload (typically an operator announcement)
// for delivery to every connected dashboard client.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Msg("Hub broadcast channel full, dropping announcement push.")
	}
}

// Register enqueues a new dashboard client for the hub to track. It returns
// without blocking if the hub's event loop has already exited (server
// shutdown raced a just-upgraded WebSocket handshake).
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.closed:
	}
}

// Unregister removes a dashboard client from the hub's tracking. It blocks
// until the hub's event loop accepts it or has already exited: a dropped
// unregister (e.g. a non-blocking send racing the loop mid-deliver) would
// leak the client's entry in Hub.clients for the rest of the process's
// life, so unlike Broadcast this has no lossy default case.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.closed:
	}
}
