package model

import "errors"

// Move validation errors. This is the closed set a caller can match on:
// every rejection of a move maps to exactly one of these, and the rejected
// game state is always returned unchanged.
var (
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrPositionOutOfBounds = errors.New("position is out of bounds")
	ErrNotAdjacent         = errors.New("cell is not adjacent to any filled cell")
	ErrWordAlreadyUsed     = errors.New("word has already been played")
	ErrLetterNotInWord     = errors.New("placed letter does not appear in the claimed word")
	ErrInvalidWordLength   = errors.New("claimed word length is invalid")
	ErrNoValidPath         = errors.New("no path on the board spells the claimed word")
	ErrWordNotInDictionary = errors.New("word is not in the dictionary")
)

// Game lifecycle errors
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFinished        = errors.New("game is already finished")
	ErrGameNotStarted      = errors.New("game is waiting for players")
	ErrGameFull            = errors.New("game already has the maximum number of players")
	ErrGameInProgress      = errors.New("game is already in progress")
	ErrAlreadyInGame       = errors.New("player is already in this game")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidBaseWord     = errors.New("base word does not fit the board")
	ErrInvalidBoardSize    = errors.New("invalid board size")
	ErrVersionConflict     = errors.New("game was modified concurrently")
)

// Player errors
var (
	ErrPlayerNotFound = errors.New("player not found")
)

// Dictionary errors
var (
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
