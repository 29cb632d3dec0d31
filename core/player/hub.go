package player

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"AuraFM/logger"
)

// MessageType identifies a now-playing feed message.
type MessageType string

const (
	MsgTypeNowPlaying MessageType = "now_playing" // a track started playing
	MsgTypePing       MessageType = "ping"        // heartbeat
	MsgTypePong       MessageType = "pong"        // heartbeat response
)

// WSMessage is the wire format of the now-playing feed.
type WSMessage struct {
	Type      MessageType     `json:"type"`
	UserID    int64           `json:"userId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NowPlayingData describes the track a user just started.
type NowPlayingData struct {
	TrackID    string   `json:"trackId"`
	PreviewURL string   `json:"previewUrl"`
	Tags       []string `json:"tags,omitempty"`
}

// Client is one websocket subscriber of a user's now-playing feed.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID int64
}

// Hub fans now-playing events out to each user's open connections. A user
// may listen from several devices, so connections are kept per user rather
// than one per user.
type Hub struct {
	users map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *userMessage

	mu   sync.RWMutex
	done chan struct{}
}

type userMessage struct {
	userID  int64
	payload []byte
}

// NewHub creates a now-playing hub.
func NewHub() *Hub {
	return &Hub{
		users:      make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *userMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run drives the hub loop until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.sendToUser(msg)

		case <-h.done:
			h.cleanup()
			return
		}
	}
}

// Stop shuts the hub down and closes all client channels.
func (h *Hub) Stop() {
	close(h.done)
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyNowPlaying pushes a now-playing event to all of a user's
// connections. Delivery is best-effort; a user with no open connection is a
// no-op.
func (h *Hub) NotifyNowPlaying(userID int64, data NowPlayingData) {
	raw, err := json.Marshal(data)
	if err != nil {
		logger.Warn("Failed to encode now-playing event", logger.ErrorField(err))
		return
	}
	msg := &WSMessage{
		Type:      MsgTypeNowPlaying,
		UserID:    userID,
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Warn("Failed to encode now-playing message", logger.ErrorField(err))
		return
	}

	select {
	case h.broadcast <- &userMessage{userID: userID, payload: payload}:
	default:
		logger.Warn("Now-playing broadcast queue full, dropping event",
			logger.Int64("userId", userID),
		)
	}
}

// ConnectionCount reports how many connections a user has open.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users[client.UserID] == nil {
		h.users[client.UserID] = make(map[*Client]bool)
	}
	h.users[client.UserID][client] = true

	logger.Info("Now-playing client connected",
		logger.Int64("userId", client.UserID),
		logger.Int("connections", len(h.users[client.UserID])),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.users[client.UserID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.users, client.UserID)
	}

	logger.Info("Now-playing client disconnected",
		logger.Int64("userId", client.UserID),
	)
}

func (h *Hub) sendToUser(msg *userMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.users[msg.userID]))
	for client := range h.users[msg.userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- msg.payload:
		default:
			// Slow consumer, drop the connection. This runs on the hub
			// loop itself, so it must not go through the unregister
			// channel the loop is draining.
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) cleanup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.users {
		for client := range clients {
			close(client.Send)
		}
	}
	h.users = make(map[int64]map[*Client]bool)
}

// ReadPump consumes client frames until the connection drops. Only ping
// frames are meaningful from the client side.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Now-playing read error",
					logger.Int64("userId", c.UserID),
					logger.ErrorField(err),
				)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == MsgTypePing {
			pong := &WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()}
			if data, err := json.Marshal(pong); err == nil {
				select {
				case c.Send <- data:
				default:
				}
			}
		}
	}
}

// WritePump flushes queued messages to the connection and keeps it alive
// with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
