package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// writeWait is time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// pongWait is time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// pingPeriod is the interval for sending pings (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is maximum message size allowed from peer
	maxMessageSize = 512
)

// sendBufferSize is the number of events queued per client before drops
const sendBufferSize = 256

// subscribeMessage is the only frame a client sends. It narrows the entities
// the client is notified about; an empty list restores every entity.
type subscribeMessage struct {
	Subscribe []EntityType `json:"subscribe"`
}

// Client is one browser tab listening for ledger, asset, and project changes
type Client struct {
	id        string
	conn      *websocket.Conn
	hub       *Hub
	send      chan []byte
	closed    bool
	entities  map[EntityType]bool // nil means every entity
	dropped   int
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:   uuid.New().String(),
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Wants reports whether the client subscribed to changes of entity
func (c *Client) Wants(entity EntityType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entities == nil || c.entities[entity]
}

// Send queues a message to be sent to the client. A full buffer drops the
// message; the client then refetches on its next change notification.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.dropped++
		log.Warn().
			Str("client_id", c.id).
			Int("dropped", c.dropped).
			Msg("WebSocket send buffer full, dropping event")
		return ErrSendBufferFull
	}
}

// Dropped returns how many events were dropped for a full buffer
func (c *Client) Dropped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dropped
}

// handleMessage applies a subscribe frame; anything else is ignored
func (c *Client) handleMessage(data []byte) {
	var msg subscribeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Debug().Err(err).Str("client_id", c.id).Msg("Ignoring WebSocket frame")
		return
	}

	var entities map[EntityType]bool
	if len(msg.Subscribe) > 0 {
		entities = make(map[EntityType]bool, len(msg.Subscribe))
		for _, e := range msg.Subscribe {
			entities[e] = true
		}
	}

	c.mu.Lock()
	c.entities = entities
	c.mu.Unlock()

	log.Debug().
		Str("client_id", c.id).
		Int("entities", len(entities)).
		Msg("WebSocket subscription updated")
}

// Close closes the client connection
// Safe to call multiple times from different goroutines
func (c *Client) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		closeErr = c.conn.Close()
	})
	return closeErr
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ReadPump pumps messages from the WebSocket connection
// This should be run in a goroutine
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Msg("WebSocket unexpected close")
			}
			break
		}
		c.handleMessage(data)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
// This should be run in a goroutine
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed, hub closed this client
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Msg("WebSocket write error")
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
