package events

import (
	"log/slog"
	"sync"

	"github.com/nkarpov/balda-go/internal/model"
)

// subscriberBufferSize is the per-subscriber send buffer; slow consumers
// drop events rather than stalling the broadcaster
const subscriberBufferSize = 64

// Hub fans game events out to the subscribers of a single game
type Hub struct {
	gameID model.GameID
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:      gameID,
		logger:      logger.With(slog.String("game_id", string(gameID))),
		subscribers: make(map[chan []byte]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, subscriberBufferSize)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("event subscriber added", slog.Int("total", count))
	return ch
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("event subscriber removed", slog.Int("total", count))
}

// Broadcast sends an event to every subscriber, dropping it for any
// subscriber whose buffer is full
func (h *Hub) Broadcast(event []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("event dropped - subscriber buffer full")
		}
	}
}

// HubManager tracks one hub per game
type HubManager struct {
	logger *slog.Logger

	mu   sync.Mutex
	hubs map[model.GameID]*Hub
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		logger: logger,
		hubs:   make(map[model.GameID]*Hub),
	}
}

// HubFor returns the hub for a game, creating it on first use
func (m *HubManager) HubFor(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	hub, ok := m.hubs[gameID]
	if !ok {
		hub = NewHub(gameID, m.logger)
		m.hubs[gameID] = hub
	}
	return hub
}
