// Live feed hub. Fans each completed season out to connected websocket
// clients.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message is the envelope for every live feed frame.
type Message struct {
	Type    string `json:"type"` // "season", "reset"
	Payload any    `json:"payload,omitempty"`
}

// Client is one connected live feed consumer.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel of outbound frames
}

// Hub maintains the set of connected clients and fans frames out to
// them. The feed is one-way: inbound frames are read only to detect
// disconnects.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub returns a hub ready to Run.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Start it once, in its own goroutine, before
// any Broadcast or ServeWs call.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			slog.Info("live client connected", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				slog.Info("live client disconnected", "clients", len(h.clients))
			}
		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Slow consumer: drop the client, not the feed.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast encodes one frame and sends it to every connected client.
func (h *Hub) Broadcast(msgType string, payload any) {
	frame, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		slog.Error("live frame encode failed", "error", err, "type", msgType)
		return
	}
	h.broadcast <- frame
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and registers the client with the hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Inbound frames are discarded; a read error means the client
		// is gone.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	// Range stops when the hub closes c.send.
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
