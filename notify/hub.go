package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub pushes notification events to connected UI clients.
type Hub struct {
	logger     zerolog.Logger
	clients    map[*HubClient]bool
	broadcast  chan []byte
	register   chan *HubClient
	unregister chan *HubClient
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     log.Logger("notify-hub"),
		clients:    make(map[*HubClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *HubClient),
		unregister: make(chan *HubClient),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastRecord pushes a notification lifecycle event ("created" or
// "removed") to every connected client.
func (h *Hub) BroadcastRecord(event string, rec Record) {
	payload, err := json.Marshal(map[string]interface{}{"type": event, "payload": rec})
	if err != nil {
		h.logger.Error().Msgf("marshal broadcast error: %s", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Msg("broadcast buffer full, dropping event")
	}
}

// HubClient bridges one websocket connection and the hub.
type HubClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Serve attaches conn to the hub and starts its pumps.
func (h *Hub) Serve(conn *websocket.Conn) {
	client := &HubClient{hub: h, conn: conn, send: make(chan []byte, 32)}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

func (c *HubClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// Clients only listen; anything they send is drained and dropped.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *HubClient) writePump() {
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
