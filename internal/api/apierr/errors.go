package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Move rejection codes — one per engine validation error
const (
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodePositionOutOfBounds = "POSITION_OUT_OF_BOUNDS"
	CodeNotAdjacent         = "NOT_ADJACENT"
	CodeWordAlreadyUsed     = "WORD_ALREADY_USED"
	CodeLetterNotInWord     = "LETTER_NOT_IN_WORD"
	CodeInvalidWordLength   = "INVALID_WORD_LENGTH"
	CodeNoValidPath         = "NO_VALID_PATH"
	CodeWordNotInDictionary = "WORD_NOT_IN_DICTIONARY"
)

// General codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameFinished        = "GAME_FINISHED"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameFull            = "GAME_FULL"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInvalidBoardSize    = "INVALID_BOARD_SIZE"
	CodeInvalidBaseWord     = "INVALID_BASE_WORD"
	CodeConflict            = "CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Move rejections
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrPositionOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodePositionOutOfBounds, "Position is out of bounds"}}
	case errors.Is(err, model.ErrNotAdjacent):
		return &httpError{http.StatusConflict, APIError{CodeNotAdjacent, "Cell is not adjacent to any filled cell"}}
	case errors.Is(err, model.ErrWordAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodeWordAlreadyUsed, "Word has already been played"}}
	case errors.Is(err, model.ErrLetterNotInWord):
		return &httpError{http.StatusBadRequest, APIError{CodeLetterNotInWord, "Placed letter does not appear in the claimed word"}}
	case errors.Is(err, model.ErrInvalidWordLength):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWordLength, "Claimed word length is invalid"}}
	case errors.Is(err, model.ErrNoValidPath):
		return &httpError{http.StatusConflict, APIError{CodeNoValidPath, "No path on the board spells the claimed word"}}
	case errors.Is(err, model.ErrWordNotInDictionary):
		return &httpError{http.StatusConflict, APIError{CodeWordNotInDictionary, "Word is not in the dictionary"}}

	// Game lifecycle
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game is waiting for players"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is already in progress"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game already has the maximum number of players"}}
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "Player is already in this game"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, "Insufficient players"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, "Invalid board size"}}
	case errors.Is(err, model.ErrInvalidBaseWord):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBaseWord, "Base word does not fit the board"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Game was modified concurrently, retry"}}

	// Players and auth
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
