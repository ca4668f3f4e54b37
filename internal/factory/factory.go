package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/nkarpov/balda-go/internal/api/events"
	"github.com/nkarpov/balda-go/internal/dependencies/clock"
	"github.com/nkarpov/balda-go/internal/dependencies/random"
	"github.com/nkarpov/balda-go/internal/services/auth"
	"github.com/nkarpov/balda-go/internal/services/bot"
	"github.com/nkarpov/balda-go/internal/services/dictionary"
	"github.com/nkarpov/balda-go/internal/services/game"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
	"github.com/nkarpov/balda-go/internal/services/scoring"
	"github.com/nkarpov/balda-go/internal/services/suggest"
	"github.com/nkarpov/balda-go/internal/storage"
	"github.com/nkarpov/balda-go/internal/storage/memory"
	redisstorage "github.com/nkarpov/balda-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	PathfindService   *pathfind.Service
	SuggestService    *suggest.Service
	GameController    *game.Controller
	BotService        *bot.Service
	AuthService       *auth.Service
	HubManager        *events.HubManager
	Broadcaster       *events.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	dictService := dictionary.New(store, logger)
	scoringService := scoring.New()
	pathfindService := pathfind.New()
	suggestService := suggest.New(pathfindService, scoringService)
	engine := game.NewEngine(pathfindService, scoringService)
	gameController := game.NewController(store, engine, suggestService, dictService, clk, logger)
	botService := bot.NewService(gameController, bot.DefaultStrategies(rnd), logger)
	authService := auth.New(store, clk, authCfg, logger)
	hubManager := events.NewHubManager(logger)
	broadcaster := events.NewBroadcaster(hubManager, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		PathfindService:   pathfindService,
		SuggestService:    suggestService,
		GameController:    gameController,
		BotService:        botService,
		AuthService:       authService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
