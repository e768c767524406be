package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcase/database"
	"bookcase/internal/catalog"
	"bookcase/internal/config"
	"bookcase/internal/http-api/handler"
	"bookcase/internal/http-api/repository"
	"bookcase/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// The catalog cache is best-effort; the API works without Redis.
	var searcher catalog.Searcher = catalog.NewClient(cfg.OpenLibraryURL)
	redisClient, err := catalog.NewRedisClient(context.Background(), cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		searcher = catalog.NewCachedSearcher(searcher, redisClient, cfg.CacheTTL, logger)
	}

	txRunner := repository.NewTxRunner(db)
	userBookRepo := repository.NewUserBookRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	librarySvc := service.NewLibraryService(txRunner, userBookRepo, sessionRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userBookRepo)
	statsSvc := service.NewStatsService(txRunner)

	router := handler.NewRouter(cfg.JWTSecret, cfg.CORSOrigins, handler.Routers{
		Library: handler.NewLibraryHandler(librarySvc),
		Rating:  handler.NewRatingHandler(ratingSvc),
		Stats:   handler.NewStatsHandler(statsSvc),
		Search:  handler.NewSearchHandler(searcher),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("api server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
