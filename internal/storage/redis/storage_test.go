package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/nkarpov/balda-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:        id,
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

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Anna",
		IsGuest:     false,
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Anna"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guest := &model.Player{ID: "guest-1", IsGuest: true}
	registered := &model.Player{ID: "registered-1", IsGuest: false}

	_ = s.storage.SavePlayer(s.ctx, guest)
	_ = s.storage.SavePlayer(s.ctx, registered)

	guestTTL := s.mini.TTL(playerKey(guest.ID))
	registeredTTL := s.mini.TTL(playerKey(registered.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

func (s *StorageSuite) TestAIPlayerRoundTrip() {
	player := &model.Player{
		ID:         "ai-1",
		IsAI:       true,
		AIStrategy: "greedy",
	}
	_ = s.storage.SavePlayer(s.ctx, player)

	retrieved, err := s.storage.GetPlayer(s.ctx, "ai-1")
	s.Require().NoError(err)
	s.True(retrieved.IsAI)
	s.Equal("greedy", retrieved.AIStrategy)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "anna",
		PasswordHash: "hash123",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "anna",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "anna")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	g := s.newGame("game-1")

	err := s.storage.SaveGame(s.ctx, g)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(g.ID, retrieved.ID)
	s.Equal(g.BaseWord, retrieved.BaseWord)
	s.Equal(g.Players, retrieved.Players)
	s.Equal(g.Version, retrieved.Version)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameMovesSurviveRoundTrip() {
	g := s.newGame("game-1")
	g.Moves = []model.AppliedMove{
		{
			PlayerID:  "p1",
			Position:  model.Position{Row: 1, Col: 2},
			Letter:    'О',
			Word:      "ВОЛ",
			Score:     4,
			AppliedAt: time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
		},
	}
	g.UsedWords = []string{"БАЛДА", "ВОЛ"}
	g.Version = 2

	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(retrieved.Moves, 1)
	s.Equal('О', retrieved.Moves[0].Letter)
	s.Equal("ВОЛ", retrieved.Moves[0].Word)
	s.Equal(g.UsedWords, retrieved.UsedWords)
}

func (s *StorageSuite) TestGameTTL() {
	_ = s.storage.SaveGame(s.ctx, s.newGame("game-1"))

	ttl := s.mini.TTL(gameKey("game-1"))
	s.True(ttl > 0, "Game should have TTL")
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, s.newGame("game-1"))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCompareAndSaveGameSucceedsOnMatchingVersion() {
	g := s.newGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	next := g.Clone()
	next.Version = 2
	s.Require().NoError(s.storage.CompareAndSaveGame(s.ctx, next, 1))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestCompareAndSaveGameRejectsStaleVersion() {
	g := s.newGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	next := g.Clone()
	next.Version = 2
	s.Require().NoError(s.storage.CompareAndSaveGame(s.ctx, next, 1))

	stale := g.Clone()
	stale.Version = 2
	err := s.storage.CompareAndSaveGame(s.ctx, stale, 1)
	s.ErrorIs(err, model.ErrVersionConflict)

	// The first write must still be in place
	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestCompareAndSaveGameRequiresExistingGame() {
	err := s.storage.CompareAndSaveGame(s.ctx, s.newGame("game-1"), 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Dictionary tests

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"БАЛДА", "КОЛ", "ВОЛ"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestGetDictionaryWordsEmpty() {
	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Nil(retrieved)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesExisting() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"БАЛДА"})
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"КОЛ", "ВОЛ"})

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"КОЛ", "ВОЛ"}, retrieved)
}

func (s *StorageSuite) TestDictionaryNoTTL() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"БАЛДА"})

	ttl := s.mini.TTL(dictionaryKey())
	s.Equal(time.Duration(0), ttl, "Dictionary should not have TTL")
}
