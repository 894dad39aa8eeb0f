// Package realtime pushes change notifications to connected browsers over
// websockets so they can reload whatever collection changed.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"universo/internal/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Event tells clients that an entity changed. Type is "<entity>.<action>",
// for example "task.updated".
type Event struct {
	Type string `json:"type"`
	ID   uint   `json:"id,omitempty"`
}

// OnlineUser is one entry of the presence list sent to administrators.
type OnlineUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type onlineMessage struct {
	Type string       `json:"type"`
	Data []OnlineUser `json:"data"`
}

// Client is one websocket connection.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	identity auth.Identity
}

// Hub tracks connections and fans events out to them. Run owns the client
// set; everything else talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *log.Logger
}

// NewHub creates a hub accepting upgrades from allowedOrigins. "*" allows any
// origin; requests without an Origin header are always accepted.
func NewHub(logger *log.Logger, allowedOrigins []string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.WithPrefix("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Run processes registrations and events until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("client connected", "user", client.identity.UserID)
			h.broadcastOnlineUsers()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("client disconnected", "user", client.identity.UserID)
				h.broadcastOnlineUsers()
			}

		case ev := <-h.broadcast:
			message, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("marshal event", "err", err)
				continue
			}
			for client := range h.clients {
				h.deliver(client, message)
			}
		}
	}
}

// Publish queues ev for every connected client. It never blocks a request:
// when the queue is full the event is dropped.
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	default:
		h.logger.Warn("event dropped, queue full", "type", ev.Type, "id", ev.ID)
	}
}

// broadcastOnlineUsers sends the presence list to administrators only.
func (h *Hub) broadcastOnlineUsers() {
	online := make([]OnlineUser, 0, len(h.clients))
	for client := range h.clients {
		online = append(online, OnlineUser{
			ID:    client.identity.UserID,
			Email: client.identity.Email,
			Role:  string(client.identity.Role),
		})
	}
	message, err := json.Marshal(onlineMessage{Type: "online_users", Data: online})
	if err != nil {
		h.logger.Error("marshal online users", "err", err)
		return
	}
	for client := range h.clients {
		if client.identity.IsAdmin() {
			h.deliver(client, message)
		}
	}
}

// deliver drops a client whose buffer is full instead of stalling the hub.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		delete(h.clients, client)
		close(client.send)
		h.logger.Warn("slow client dropped", "user", client.identity.UserID)
	}
}

// ServeWs upgrades an authenticated request to a websocket connection.
func (h *Hub) ServeWs(c *gin.Context) {
	identity, ok := auth.FromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, sendBuffer), identity: identity}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go h.readPump(client)
}

// readPump only watches for disconnects; clients never send commands.
func (h *Hub) readPump(client *Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
		client.conn.Close()
	}()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
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
