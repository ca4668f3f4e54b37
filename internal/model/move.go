package model

import "time"

// AppliedMove is a committed, already-validated move.
// Immutable once appended to a game's move list.
type AppliedMove struct {
	PlayerID  PlayerID
	Position  Position
	Letter    rune // Uppercase
	Word      string
	Score     int
	AppliedAt time.Time
}

// MoveInput is an unvalidated candidate move produced by a caller
type MoveInput struct {
	PlayerID PlayerID
	Position Position
	Letter   rune
	Word     string
}

// Suggestion is a legal but not-yet-applied candidate move produced by the
// suggestion engine. Suggestions are ephemeral and never persisted.
type Suggestion struct {
	Position Position
	Letter   rune
	Word     string
	Score    int
}
