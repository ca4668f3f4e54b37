package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nkarpov/balda-go/internal/api/events"
	"github.com/nkarpov/balda-go/internal/api/handler"
	"github.com/nkarpov/balda-go/internal/api/middleware"
	"github.com/nkarpov/balda-go/internal/services/auth"
	"github.com/nkarpov/balda-go/internal/services/bot"
	"github.com/nkarpov/balda-go/internal/services/game"
	"github.com/nkarpov/balda-go/internal/services/scoring"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	BotService     *bot.Service
	ScoringService *scoring.Service
	HubManager     *events.HubManager
	Broadcaster    *events.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.Logger)
	gameHandler := handler.NewGameHandler(
		cfg.GameController,
		cfg.BotService,
		cfg.AuthService,
		cfg.ScoringService,
		cfg.HubManager,
		cfg.Broadcaster,
		cfg.Logger,
	)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.Me).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/skip", gameHandler.Skip).Methods(http.MethodPost)
	games.HandleFunc("/{id}/suggestions", gameHandler.Suggest).Methods(http.MethodGet)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Score preview (auth keeps the surface uniform)
	words := api.PathPrefix("/words").Subrouter()
	words.Use(authMiddleware)
	words.HandleFunc("/{word}/score", gameHandler.WordScore).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
