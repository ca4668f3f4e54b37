package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/nkarpov/balda-go/internal/api/apierr"
	"github.com/nkarpov/balda-go/internal/api/middleware"
	"github.com/nkarpov/balda-go/internal/api/request"
	"github.com/nkarpov/balda-go/internal/api/response"
	"github.com/nkarpov/balda-go/internal/services/auth"
)

// PlayerHandler handles authentication and player endpoints
type PlayerHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(authService *auth.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		auth:   authService,
		logger: logger.With(slog.String("component", "player-handler")),
	}
}

// CreateGuest handles POST /players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = "Guest"
	}

	session, err := h.auth.CreateGuestPlayer(r.Context(), displayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Username and password are required"))
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	session, err := h.auth.RegisterPlayer(r.Context(), username, req.Password, displayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /players/logout
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.auth.Logout(session.Token)
	}
	response.NoContent(w)
}

// Me handles GET /players/me
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
