package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/housecup/house-points-system/standings"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message - конверт для всех исходящих сообщений хаба.
type Message struct {
	Type    string      `json:"type"` // "STANDINGS_UPDATED"
	Payload interface{} `json:"payload"`
}

// Hub рассылает свежую таблицу всем подписчикам. Подписчики только
// читают; входящие сообщения игнорируются.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	broadcast chan []byte
	clients   map[*Client]bool
	logger    *slog.Logger
	mu        sync.RWMutex
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.logger.Info("standings subscriber registered", slog.Int("total", len(h.clients)))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.mu.Lock()
				if !client.closed {
					close(client.send)
					client.closed = true
				}
				client.mu.Unlock()
				delete(h.clients, client)
				h.logger.Info("standings subscriber unregistered", slog.Int("total", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.mu.Lock()
				if client.closed {
					client.mu.Unlock()
					continue
				}
				select {
				case client.send <- message:
				default:
					// Канал клиента переполнен - сообщение пропускается,
					// клиент получит следующую рассылку.
				}
				client.mu.Unlock()
			}
			h.mu.RUnlock()
		}
	}
}

// StandingsChanged реализует services.StandingsNotifier.
func (h *Hub) StandingsChanged(rows []standings.Row) {
	messageBytes, err := json.Marshal(Message{Type: "STANDINGS_UPDATED", Payload: rows})
	if err != nil {
		h.logger.Error("failed to marshal standings message", slog.Any("error", err))
		return
	}
	h.broadcast <- messageBytes
}
