package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkarpov/balda-go/internal/dependencies/clock"
	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/dictionary"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
	"github.com/nkarpov/balda-go/internal/services/suggest"
	"github.com/nkarpov/balda-go/internal/storage"
)

// Board size limits
const (
	MinBoardSize = 3
	MaxBoardSize = 10
)

// applyRetries bounds the optimistic-concurrency retry loop. The engine is
// pure, so a retry just re-reads the latest snapshot and revalidates.
const applyRetries = 3

// Controller owns game persistence around the pure engine. Concurrent moves
// against the same game are serialized through compare-and-save on the
// snapshot version: stale writers lose, re-read, and retry.
type Controller struct {
	storage   storage.Storage
	engine    *Engine
	suggester *suggest.Service
	dict      dictionary.Lookup
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	store storage.Storage,
	engine *Engine,
	suggester *suggest.Service,
	dict dictionary.Lookup,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   store,
		engine:    engine,
		suggester: suggester,
		dict:      dict,
		clock:     clk,
		logger:    logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGameParams describes a new game
type CreateGameParams struct {
	Size      int
	BaseWord  string
	Players   []model.PlayerID
	AIPlayers map[model.PlayerID]string // player id -> strategy name
}

// CreateGame validates the parameters and persists a fresh game snapshot.
// The base word must be a dictionary word; it seeds the middle row.
func (c *Controller) CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error) {
	if params.Size < MinBoardSize || params.Size > MaxBoardSize {
		return nil, model.ErrInvalidBoardSize
	}
	if len(params.Players) == 0 {
		return nil, model.ErrInsufficientPlayers
	}
	if len(params.Players) > model.MaxPlayers {
		return nil, model.ErrGameFull
	}

	baseWord := dictionary.Normalize(params.BaseWord)
	if _, err := model.NewBoardWithBaseWord(params.Size, baseWord); err != nil {
		return nil, err
	}
	if !dictionary.Exists(ctx, c.dict, baseWord) {
		return nil, model.ErrWordNotInDictionary
	}

	players := make([]model.PlayerID, 0, len(params.Players))
	scores := make(map[model.PlayerID]int, len(params.Players))
	for _, p := range params.Players {
		if _, dup := scores[p]; dup {
			return nil, model.ErrAlreadyInGame
		}
		players = append(players, p)
		scores[p] = 0
	}

	aiPlayers := make(map[model.PlayerID]string, len(params.AIPlayers))
	for p, strategy := range params.AIPlayers {
		if _, ok := scores[p]; !ok {
			return nil, model.ErrPlayerNotFound
		}
		aiPlayers[p] = strategy
	}

	now := c.clock.Now()
	g := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Size:      params.Size,
		BaseWord:  baseWord,
		Players:   players,
		AIPlayers: aiPlayers,
		Moves:     []model.AppliedMove{},
		Scores:    scores,
		UsedWords: []string{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.Int("size", params.Size),
		slog.String("base_word", baseWord),
		slog.Int("player_count", len(players)),
		slog.Int("ai_count", len(aiPlayers)),
	)

	return g, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// JoinGame adds a player to a game that is still waiting for players
func (c *Controller) JoinGame(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error) {
	for attempt := 0; attempt < applyRetries; attempt++ {
		g, err := c.storage.GetGame(ctx, id)
		if err != nil {
			return nil, err
		}

		if g.HasPlayer(playerID) {
			return nil, model.ErrAlreadyInGame
		}
		if len(g.Players) >= model.MaxPlayers {
			return nil, model.ErrGameFull
		}
		if g.Status() != model.GameStatusWaiting {
			return nil, model.ErrGameInProgress
		}

		next := g.Clone()
		next.Players = append(next.Players, playerID)
		next.Scores[playerID] = 0
		next.Version++
		next.UpdatedAt = c.clock.Now()

		err = c.storage.CompareAndSaveGame(ctx, next, g.Version)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, model.ErrVersionConflict
}

// ApplyMove runs the engine against the latest snapshot and persists the
// result, retrying on concurrent modification
func (c *Controller) ApplyMove(ctx context.Context, id model.GameID, input model.MoveInput) (*model.Game, error) {
	for attempt := 0; attempt < applyRetries; attempt++ {
		g, err := c.storage.GetGame(ctx, id)
		if err != nil {
			return nil, err
		}

		next, err := c.engine.Apply(ctx, g, input, c.dict, c.clock.Now())
		if err != nil {
			return nil, err
		}

		err = c.storage.CompareAndSaveGame(ctx, next, g.Version)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		move := next.Moves[len(next.Moves)-1]
		c.logger.Info("move applied",
			slog.String("game_id", string(id)),
			slog.String("player_id", string(input.PlayerID)),
			slog.String("word", move.Word),
			slog.Int("score", move.Score),
			slog.Int64("version", next.Version),
		)
		return next, nil
	}
	return nil, model.ErrVersionConflict
}

// SkipTurn passes the current player's turn
func (c *Controller) SkipTurn(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error) {
	for attempt := 0; attempt < applyRetries; attempt++ {
		g, err := c.storage.GetGame(ctx, id)
		if err != nil {
			return nil, err
		}

		next, err := c.engine.Skip(g, playerID, c.clock.Now())
		if err != nil {
			return nil, err
		}

		err = c.storage.CompareAndSaveGame(ctx, next, g.Version)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		c.logger.Info("turn skipped",
			slog.String("game_id", string(id)),
			slog.String("player_id", string(playerID)),
		)
		return next, nil
	}
	return nil, model.ErrVersionConflict
}

// Suggest returns ranked legal moves for the game's current board.
// Read-only; the snapshot is never modified.
func (c *Controller) Suggest(ctx context.Context, id model.GameID, limit int, budget *pathfind.Budget) ([]model.Suggestion, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.suggester.Suggest(ctx, g, c.dict, limit, budget), nil
}
