package game

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/dictionary"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
	"github.com/nkarpov/balda-go/internal/services/scoring"
)

// Engine applies moves to game snapshots. Every operation is a pure
// function over its inputs: it either returns a fresh snapshot with the
// move committed and Version incremented, or an error with the input
// snapshot untouched. The engine performs no I/O of its own; the dictionary
// lookup is its only external dependency.
type Engine struct {
	pathfinder *pathfind.Service
	scorer     *scoring.Service
}

// NewEngine creates a new game Engine
func NewEngine(pathfinder *pathfind.Service, scorer *scoring.Service) *Engine {
	return &Engine{
		pathfinder: pathfinder,
		scorer:     scorer,
	}
}

// Apply validates the move against the snapshot and returns the resulting
// new snapshot. Rejections come back as one of the model move errors and
// leave the input snapshot completely unchanged.
func (e *Engine) Apply(ctx context.Context, g *model.Game, input model.MoveInput, dict dictionary.Lookup, now time.Time) (*model.Game, error) {
	switch g.Status() {
	case model.GameStatusFinished:
		return nil, model.ErrGameFinished
	case model.GameStatusWaiting:
		return nil, model.ErrGameNotStarted
	}

	if input.PlayerID != g.CurrentPlayer() {
		return nil, model.ErrNotYourTurn
	}

	board := g.Board()
	if !board.IsValidPosition(input.Position) {
		return nil, model.ErrPositionOutOfBounds
	}
	if !board.IsEmpty(input.Position) {
		return nil, model.ErrCellOccupied
	}
	if !board.HasFilledNeighbor(input.Position) {
		return nil, model.ErrNotAdjacent
	}

	word := dictionary.Normalize(input.Word)
	if g.HasUsedWord(word) {
		return nil, model.ErrWordAlreadyUsed
	}

	letter := unicode.ToUpper(input.Letter)
	if !strings.ContainsRune(word, letter) {
		return nil, model.ErrLetterNotInWord
	}

	placement := pathfind.Placement{Position: input.Position, Letter: letter}
	ok, err := e.pathfinder.Validate(board, placement, word)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNoValidPath
	}

	// Dictionary failures read as "not found": a move is only ever
	// committed on a positive answer
	if !dictionary.Exists(ctx, dict, word) {
		return nil, model.ErrWordNotInDictionary
	}

	score := e.scorer.WordScore(word)

	next := g.Clone()
	next.Moves = append(next.Moves, model.AppliedMove{
		PlayerID:  input.PlayerID,
		Position:  input.Position,
		Letter:    letter,
		Word:      word,
		Score:     score,
		AppliedAt: now,
	})
	next.UsedWords = append(next.UsedWords, word)
	next.Scores[input.PlayerID] += score
	next.CurrentPlayerIndex = (next.CurrentPlayerIndex + 1) % len(next.Players)
	next.Version++
	next.UpdatedAt = now

	return next, nil
}

// Skip passes the turn without placing a letter. A player with no legal
// move (or an AI whose search came up empty) skips so the game never wedges.
func (e *Engine) Skip(g *model.Game, playerID model.PlayerID, now time.Time) (*model.Game, error) {
	switch g.Status() {
	case model.GameStatusFinished:
		return nil, model.ErrGameFinished
	case model.GameStatusWaiting:
		return nil, model.ErrGameNotStarted
	}

	if playerID != g.CurrentPlayer() {
		return nil, model.ErrNotYourTurn
	}

	next := g.Clone()
	next.CurrentPlayerIndex = (next.CurrentPlayerIndex + 1) % len(next.Players)
	next.Version++
	next.UpdatedAt = now

	return next, nil
}
