package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/api"
	"github.com/notekeeper/backend/internal/auth"
	"github.com/notekeeper/backend/internal/config"
	"github.com/notekeeper/backend/internal/db"
	"github.com/notekeeper/backend/internal/health"
	"github.com/notekeeper/backend/internal/notes"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if insecure := cfg.InsecureDefaults(); len(insecure) > 0 {
		logger.Warn("signing secrets are using built-in development defaults; set them before deploying",
			zap.String("secrets", strings.Join(insecure, ", ")),
		)
	}

	conn, err := db.Connect(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(conn, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := db.NewUserRepository(conn)
	noteRepo := db.NewNoteRepository(conn)

	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})

	authService := auth.NewService(userRepo, tokens, logger)
	authHandlers := auth.NewHandlers(authService, logger)

	noteService := notes.NewService(noteRepo, logger)
	noteHandlers := notes.NewHandlers(noteService, logger)

	router := api.NewRouter(authHandlers, authService, noteHandlers, health.NewChecker(conn), logger)

	logger.Info("starting server", zap.String("addr", cfg.ServerAddr))
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
