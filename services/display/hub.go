package display

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message types pushed to connected displays.
const (
	MessageMatchSnapshot = "MATCH_SNAPSHOT"
	MessageMatchUpdated  = "MATCH_UPDATED"
)

// Message is the envelope every display frame travels in.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// client is one connected display. Displays only listen; inbound frames are
// read and dropped to keep the pong handler alive.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string

	mu     sync.Mutex
	closed bool
}

// Hub fans live match updates out to connected displays, one room per
// tournament slug.
type Hub struct {
	register   chan *client
	unregister chan *client
	rooms      map[string]map[*client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		rooms:      make(map[string]map[*client]bool),
	}
}

// Run owns the room bookkeeping. Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[c.room]; !ok {
				h.rooms[c.room] = make(map[*client]bool)
			}
			h.rooms[c.room][c] = true
			log.Printf("Display joined room %s, %d connected\n", c.room, len(h.rooms[c.room]))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[c.room]; ok {
				if _, found := roomClients[c]; found {
					c.mu.Lock()
					if !c.closed {
						close(c.send)
						c.closed = true
					}
					c.mu.Unlock()
					delete(roomClients, c)
					if len(roomClients) == 0 {
						delete(h.rooms, c.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastMatch pushes an updated live match to every display following the
// tournament.
func (h *Hub) BroadcastMatch(tournamentID string, match *livematch.LiveMatch) {
	h.broadcastToRoom(tournamentID, Message{Type: MessageMatchUpdated, Payload: match})
}

func (h *Hub) broadcastToRoom(room string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[room]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message for room %s: %v\n", room, err)
		return
	}

	for c := range roomClients {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			continue
		}
		select {
		case c.send <- messageBytes:
		default:
			// Slow consumer, drop the frame rather than block the hub.
		}
		c.mu.Unlock()
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Display in room %s dropped: %v\n", c.room, err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
