package model

import (
	"strings"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameStatus is the derived phase of a game. It is never stored; it is
// computed from the player list and the board.
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "waiting"     // Fewer than 2 players joined
	GameStatusInProgress GameStatus = "in_progress" // Moves being made
	GameStatusFinished   GameStatus = "finished"    // Board is full
)

// MaxPlayers caps how many players can join a single game
const MaxPlayers = 4

// MinWordLength is the shortest word a move may claim
const MinWordLength = 3

// Game is an immutable snapshot of a Balda game. Operations that change a
// game return a fresh snapshot with Version incremented; a Game value is
// never mutated in place once it leaves the game engine.
type Game struct {
	ID       GameID
	Size     int
	BaseWord string // Uppercase; seeds the middle row at creation

	Players   []PlayerID          // Turn order
	AIPlayers map[PlayerID]string // Player id -> strategy name for AI-driven players

	CurrentPlayerIndex int
	Moves              []AppliedMove
	Scores             map[PlayerID]int
	UsedWords          []string // Uppercase, in play order; one entry per accepted move

	Version   int64 // Monotonic; callers use it for optimistic concurrency
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() PlayerID {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.CurrentPlayerIndex]
}

// IsAI returns true if the given player is driven by the suggestion engine
func (g *Game) IsAI(id PlayerID) bool {
	_, ok := g.AIPlayers[id]
	return ok
}

// HasPlayer returns true if the given player is part of this game
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Status derives the game phase from the snapshot
func (g *Game) Status() GameStatus {
	if len(g.Players) < 2 {
		return GameStatusWaiting
	}
	if g.Board().IsFull() {
		return GameStatusFinished
	}
	return GameStatusInProgress
}

// HasUsedWord reports whether the word was already played in this game.
// The base word counts as used even though it belongs to no move.
func (g *Game) HasUsedWord(word string) bool {
	upper := strings.ToUpper(word)
	if upper == g.BaseWord {
		return true
	}
	for _, w := range g.UsedWords {
		if w == upper {
			return true
		}
	}
	return false
}

// Board reconstructs the current board by replaying every accepted move onto
// a board seeded with the base word. The board is always derived state.
func (g *Game) Board() *Board {
	b, err := NewBoardWithBaseWord(g.Size, g.BaseWord)
	if err != nil {
		// A persisted game always has a valid base word
		return NewBoard(g.Size)
	}
	for _, m := range g.Moves {
		b.Set(m.Position, m.Letter)
	}
	return b
}

// Clone returns a deep copy of the game snapshot
func (g *Game) Clone() *Game {
	clone := *g

	clone.Players = make([]PlayerID, len(g.Players))
	copy(clone.Players, g.Players)

	clone.AIPlayers = make(map[PlayerID]string, len(g.AIPlayers))
	for id, strategy := range g.AIPlayers {
		clone.AIPlayers[id] = strategy
	}

	clone.Moves = make([]AppliedMove, len(g.Moves))
	copy(clone.Moves, g.Moves)

	clone.Scores = make(map[PlayerID]int, len(g.Scores))
	for id, score := range g.Scores {
		clone.Scores[id] = score
	}

	clone.UsedWords = make([]string, len(g.UsedWords))
	copy(clone.UsedWords, g.UsedWords)

	return &clone
}
