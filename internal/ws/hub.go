package ws

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	broadcastBuffer = 1024
	membershipQueue = 128
)

// Hub fans event frames out to every connected client. The client set is
// owned by Run; other goroutines reach it only through channels.
type Hub struct {
	clients    map[*Client]struct{}
	connected  atomic.Int32
	broadcast  chan []byte
	register   chan *Client // unbuffered so nothing is queued past shutdown
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client, membershipQueue),
		done:       make(chan struct{}),
		logger:     logger.Named("ws"),
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
// It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.connected.Store(int32(len(h.clients)))
			h.logger.Debug("client connected", zap.Int("total_clients", len(h.clients)))
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// slow consumer
			h.drop(c)
		}
	}
	h.logger.Debug("broadcast", zap.Int("clients", len(h.clients)))
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.connected.Store(int32(len(h.clients)))
	h.logger.Debug("client disconnected", zap.Int("total_clients", len(h.clients)))
}

// Register adds client and blocks until Run accepts it. After Run has
// stopped the client's send channel is closed straight away so its write
// pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client and drops it when the queue
// is full.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	return int(h.connected.Load())
}
