package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nkarpov/balda-go/internal/api"
	"github.com/nkarpov/balda-go/internal/bootstrap"
	"github.com/nkarpov/balda-go/internal/factory"
	redisstorage "github.com/nkarpov/balda-go/internal/storage/redis"
)

func main() {
	cfg, err := bootstrap.Setup(os.Getenv("BALDA_CONFIG"))
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: strings.ToLower(cfg.StorageType),
	}
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.DictionaryService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
		logger.Warn("could not load dictionary file, trying storage",
			slog.String("path", cfg.DictionaryPath),
			slog.String("error", err.Error()),
		)
		if err := app.DictionaryService.LoadFromStorage(context.Background()); err != nil {
			logger.Error("no dictionary available", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("dictionary ready", slog.Int("words", app.DictionaryService.WordCount()))

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		BotService:     app.BotService,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
