package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gesturecontrol/models"
	"gesturecontrol/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // 54 seconds

	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Client is one WebSocket connection. Actions it sends are dispatched in order;
// once subscribed it also receives an event for every action dispatched by anyone.
type Client struct {
	hub        *WebSocketHub
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{} // closed when writePump exits
	subscribed atomic.Bool
	dispatcher *service.ActionDispatcher
}

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client connected (total: %d)", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client disconnected (total: %d)", total)

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				client.conn.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop disconnects every client and ends Run
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToAll sends a message to every subscribed client
func (h *WebSocketHub) BroadcastToAll(message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	for client := range h.clients {
		if !client.subscribed.Load() {
			continue
		}
		select {
		case client.send <- messageBytes:
		default:
			log.Printf("⚠️ Client channel full, skipping event")
		}
	}
}

func HandleWebSocket(hub *WebSocketHub, ad *service.ActionDispatcher, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 64),
		done:       make(chan struct{}),
		dispatcher: ad,
	}

	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

type wsEnvelope struct {
	Type string `json:"type"`
}

// readPump dispatches incoming actions and handles subscription messages
func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var env wsEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.reply(gin.H{"status": "invalid request", "error": "message is not a JSON object"})
			continue
		}

		switch env.Type {
		case "subscribe":
			c.subscribed.Store(true)
			c.reply(gin.H{"status": "subscribed"})
		case "unsubscribe":
			c.subscribed.Store(false)
			c.reply(gin.H{"status": "unsubscribed"})
		default:
			c.handleAction(ctx, message)
		}
	}
}

func (c *Client) handleAction(ctx context.Context, message []byte) {
	var action models.Action
	if err := json.Unmarshal(message, &action); err != nil {
		c.reply(gin.H{"status": "invalid request", "error": err.Error()})
		return
	}

	result, err := c.dispatcher.Dispatch(ctx, action)
	if err != nil {
		log.Printf("WebSocket action %q failed: %v", action.Type, err)
		c.reply(gin.H{"status": "failed", "error": err.Error()})
		return
	}
	c.reply(result)
}

func (c *Client) reply(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal reply: %v", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	case <-c.hub.quit:
	}
}

// writePump writes queued replies and events, and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
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

		case <-c.hub.quit:
			return
		}
	}
}
