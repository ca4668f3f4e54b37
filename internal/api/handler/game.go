package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nkarpov/balda-go/internal/api/apierr"
	"github.com/nkarpov/balda-go/internal/api/events"
	"github.com/nkarpov/balda-go/internal/api/middleware"
	"github.com/nkarpov/balda-go/internal/api/request"
	"github.com/nkarpov/balda-go/internal/api/response"
	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/auth"
	"github.com/nkarpov/balda-go/internal/services/bot"
	"github.com/nkarpov/balda-go/internal/services/dictionary"
	"github.com/nkarpov/balda-go/internal/services/game"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
	"github.com/nkarpov/balda-go/internal/services/scoring"
	"github.com/nkarpov/balda-go/internal/services/suggest"
)

// keepaliveInterval paces SSE comment frames so idle connections stay open
// through proxies
const keepaliveInterval = 15 * time.Second

// GameHandler handles game endpoints
type GameHandler struct {
	games       *game.Controller
	bots        *bot.Service
	auth        *auth.Service
	scorer      *scoring.Service
	hubs        *events.HubManager
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(
	games *game.Controller,
	bots *bot.Service,
	authService *auth.Service,
	scorer *scoring.Service,
	hubs *events.HubManager,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		games:       games,
		bots:        bots,
		auth:        authService,
		scorer:      scorer,
		hubs:        hubs,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "game-handler")),
	}
}

// Create handles POST /games. The authenticated player becomes the first
// player; each requested AI opponent gets its own player record.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	players := []model.PlayerID{player.ID}
	aiPlayers := make(map[model.PlayerID]string, len(req.AIOpponents))
	for _, strategy := range req.AIOpponents {
		if !h.bots.ValidStrategy(strategy) {
			apierr.WriteError(w, apierr.NewInvalidRequestError(
				fmt.Sprintf("Unknown AI strategy %q", strategy)))
			return
		}
		aiPlayer, err := h.auth.CreateAIPlayer(r.Context(), strategy)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		players = append(players, aiPlayer.ID)
		aiPlayers[aiPlayer.ID] = strategy
	}

	g, err := h.games.CreateGame(r.Context(), game.CreateGameParams{
		Size:      req.Size,
		BaseWord:  req.BaseWord,
		Players:   players,
		AIPlayers: aiPlayers,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.GetGame(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Join handles POST /games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.games.JoinGame(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.broadcaster.GameUpdated(g)
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Move handles POST /games/{id}/moves. After an accepted move any AI
// opponents play their turns before the response is written.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := gameID(r)

	var req request.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	letters := []rune(req.Letter)
	if len(letters) != 1 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Letter must be a single character"))
		return
	}

	g, err := h.games.ApplyMove(r.Context(), id, model.MoveInput{
		PlayerID: player.ID,
		Position: model.Position{Row: req.Row, Col: req.Col},
		Letter:   letters[0],
		Word:     req.Word,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.broadcaster.GameUpdated(g)

	g = h.playAITurns(r, id, g)
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Skip handles POST /games/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := gameID(r)

	g, err := h.games.SkipTurn(r.Context(), id, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.broadcaster.GameUpdated(g)

	g = h.playAITurns(r, id, g)
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Suggest handles GET /games/{id}/suggestions
func (h *GameHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	limit := suggest.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("Limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	suggestions, err := h.games.Suggest(r.Context(), gameID(r), limit, pathfind.NewBudget(pathfind.DefaultNodeBudget))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SuggestionsFromModel(suggestions))
}

// WordScore handles GET /words/{word}/score
func (h *GameHandler) WordScore(w http.ResponseWriter, r *http.Request) {
	word := dictionary.Normalize(mux.Vars(r)["word"])
	if word == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Word must not be empty"))
		return
	}

	response.JSON(w, http.StatusOK, response.WordScore{
		Word:  word,
		Score: h.scorer.WordScore(word),
	})
}

// Events handles GET /games/{id}/events as a server-sent event stream of
// game snapshots
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.games.GetGame(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	hub := h.hubs.HubFor(id)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(event); err != nil {
				return
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// playAITurns lets AI opponents respond after a state change. AI failures
// are logged but never fail the player's request.
func (h *GameHandler) playAITurns(r *http.Request, id model.GameID, fallback *model.Game) *model.Game {
	latest, err := h.bots.PlayAITurns(r.Context(), id)
	if err != nil {
		h.logger.Error("ai turns failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	if latest == nil {
		return fallback
	}
	h.broadcaster.GameUpdated(latest)
	return latest
}

// gameID extracts the game id path variable
func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
