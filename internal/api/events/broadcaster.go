package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nkarpov/balda-go/internal/api/response"
	"github.com/nkarpov/balda-go/internal/model"
)

// Broadcaster formats game snapshots as SSE events and pushes them to the
// game's hub
type Broadcaster struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubs *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

// GameUpdated broadcasts the latest snapshot to the game's subscribers
func (b *Broadcaster) GameUpdated(g *model.Game) {
	if g == nil {
		return
	}

	payload, err := json.Marshal(response.GameFromModel(g))
	if err != nil {
		b.logger.Error("failed to marshal game event", slog.String("error", err.Error()))
		return
	}

	event := fmt.Sprintf("event: game_state\ndata: %s\n\n", payload)
	b.hubs.HubFor(g.ID).Broadcast([]byte(event))
}
