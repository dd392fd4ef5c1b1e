package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GlobalHub is the single hub instance for the application.
var GlobalHub = NewHub()

// RecipeEvent is broadcast to open list pages whenever a recipe
// changes, so they can refresh without polling.
type RecipeEvent struct {
	Type     string `json:"type"` // created, updated, deleted
	RecipeID uint   `json:"recipeId"`
	Name     string `json:"name"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans recipe events out to every connected page.
type Hub struct {
	mu      sync.Mutex
	clients map[*liveClient]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*liveClient]bool)}
}

// Notify serializes the event and queues it to every client. Slow
// clients are dropped rather than blocking the caller.
func (h *Hub) Notify(event RecipeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal recipe event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) register(c *liveClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *liveClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// LiveUpdatesEndpoint upgrades the connection and streams recipe
// events until the page goes away.
func LiveUpdatesEndpoint(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}

	client := &liveClient{conn: conn, send: make(chan []byte, 16)}
	GlobalHub.register(client)

	go client.writePump()
	go client.readPump()
}

func (c *liveClient) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readPump discards inbound messages; it exists to notice the close.
func (c *liveClient) readPump() {
	defer func() {
		GlobalHub.unregister(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
