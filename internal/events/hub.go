package events

import (
	"sync"
	"time"

	"campus-vote/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	clientBuffer   = 64
	broadcastQueue = 256
)

// Event is one message pushed to subscribed clients. Events never carry
// voter identity; ballot secrecy extends to the live feed.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Hub fans election events out to connected WebSocket clients. Delivery is
// best effort: a slow client is dropped rather than allowed to stall the
// casting path.
type Hub struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[*client]bool

	broadcast chan Event
	done      chan struct{}
	once      sync.Once
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:       log.WithComponent("events"),
		clients:   make(map[*client]bool),
		broadcast: make(chan Event, broadcastQueue),
		done:      make(chan struct{}),
	}
}

// Run pumps broadcast events to every client until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- event:
				default:
					// Client is not keeping up; disconnect it
					go h.remove(c)
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// Broadcast queues an event for delivery. Never blocks; if the queue is
// full the event is dropped and counted against the log only.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	select {
	case h.broadcast <- event:
	default:
		h.log.Warning("Event queue full, dropping event - type: %s", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve attaches an upgraded WebSocket connection to the hub and blocks
// until the client disconnects
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan Event, clientBuffer),
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	h.log.Info("Event client connected - total: %d", h.ClientCount())

	go h.readPump(c)
	h.writePump(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readPump drains incoming frames so control messages are processed; the
// feed is one-way, inbound text is ignored
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warning("Event client read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				h.log.Warning("Event client write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
