package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nkarpov/balda-go/internal/api/response"
	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/testutil"
)

func testGame() *model.Game {
	return &model.Game{
		ID:        "game-1",
		Size:      5,
		BaseWord:  "БАЛДА",
		Players:   []model.PlayerID{"p1", "p2"},
		AIPlayers: map[model.PlayerID]string{},
		Moves:     []model.AppliedMove{},
		Scores:    map[model.PlayerID]int{"p1": 0, "p2": 0},
		UsedWords: []string{},
		Version:   1,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBroadcaster_GameUpdated(t *testing.T) {
	hubs := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(hubs, testutil.NopLogger())

	ch := hubs.HubFor("game-1").Subscribe()
	defer hubs.HubFor("game-1").Unsubscribe(ch)

	broadcaster.GameUpdated(testGame())

	frame := string(recvTimeout(t, ch))
	if !strings.HasPrefix(frame, "event: game_state\ndata: ") {
		t.Fatalf("unexpected frame prefix: %q", frame)
	}
	if !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("frame not terminated by a blank line: %q", frame)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(frame, "event: game_state\ndata: "), "\n\n")
	var snapshot response.Game
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		t.Fatalf("frame data is not valid JSON: %v", err)
	}

	if snapshot.ID != "game-1" {
		t.Errorf("snapshot.ID = %q, want %q", snapshot.ID, "game-1")
	}
	if snapshot.BaseWord != "БАЛДА" {
		t.Errorf("snapshot.BaseWord = %q, want %q", snapshot.BaseWord, "БАЛДА")
	}
	if snapshot.Version != 1 {
		t.Errorf("snapshot.Version = %d, want 1", snapshot.Version)
	}
	if snapshot.CurrentPlayer != "p1" {
		t.Errorf("snapshot.CurrentPlayer = %q, want %q", snapshot.CurrentPlayer, "p1")
	}
}

func TestBroadcaster_OnlyTargetGameReceives(t *testing.T) {
	hubs := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(hubs, testutil.NopLogger())

	target := hubs.HubFor("game-1").Subscribe()
	other := hubs.HubFor("game-2").Subscribe()
	defer hubs.HubFor("game-1").Unsubscribe(target)
	defer hubs.HubFor("game-2").Unsubscribe(other)

	broadcaster.GameUpdated(testGame())

	recvTimeout(t, target)
	if len(other) != 0 {
		t.Error("subscriber of another game received the event")
	}
}

func TestBroadcaster_NilGameIsIgnored(t *testing.T) {
	hubs := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(hubs, testutil.NopLogger())

	broadcaster.GameUpdated(nil)
}
