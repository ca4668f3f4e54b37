package bot

import (
	"context"
	"log/slog"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/game"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
)

const (
	// AISuggestionLimit is how many ranked candidates a strategy sees
	AISuggestionLimit = 10
	// AINodeBudget bounds the suggestion search for one AI turn
	AINodeBudget = 200_000
	// MaxAITurns is a safety limit for the PlayAITurns loop
	MaxAITurns = 64
)

// Service drives AI players. After every human action the caller invokes
// PlayAITurns, which plays consecutive AI turns until a human is up again
// or the game ends.
type Service struct {
	gameController *game.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController *game.Controller, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// ValidStrategy reports whether the named strategy exists
func (s *Service) ValidStrategy(name string) bool {
	_, ok := s.strategies[name]
	return ok
}

// PlayAITurns plays AI turns in a cascading loop and returns the latest
// snapshot, or nil when no AI turn was taken
func (s *Service) PlayAITurns(ctx context.Context, id model.GameID) (*model.Game, error) {
	var latest *model.Game
	skips := 0

	for i := 0; i < MaxAITurns; i++ {
		g, err := s.gameController.GetGame(ctx, id)
		if err != nil {
			return latest, err
		}

		if g.Status() != model.GameStatusInProgress {
			break
		}
		current := g.CurrentPlayer()
		if !g.IsAI(current) {
			break
		}
		// A full round of passes means nobody can move; stop churning
		if skips >= len(g.Players) {
			break
		}

		strategy, ok := s.strategies[g.AIPlayers[current]]
		if !ok {
			strategy = s.strategies[StrategyGreedy]
		}

		suggestions, err := s.gameController.Suggest(ctx, id, AISuggestionLimit, pathfind.NewBudget(AINodeBudget))
		if err != nil {
			return latest, err
		}

		pick, found := strategy.ChooseMove(g, suggestions)
		if !found {
			latest, err = s.gameController.SkipTurn(ctx, id, current)
			if err != nil {
				return latest, err
			}
			skips++
			s.logger.Info("ai passed",
				slog.String("game_id", string(id)),
				slog.String("player_id", string(current)),
			)
			continue
		}

		latest, err = s.gameController.ApplyMove(ctx, id, model.MoveInput{
			PlayerID: current,
			Position: pick.Position,
			Letter:   pick.Letter,
			Word:     pick.Word,
		})
		if err != nil {
			return latest, err
		}
		skips = 0

		s.logger.Info("ai moved",
			slog.String("game_id", string(id)),
			slog.String("player_id", string(current)),
			slog.String("word", pick.Word),
			slog.Int("score", pick.Score),
		)
	}

	return latest, nil
}
