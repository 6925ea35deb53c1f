package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/parthgupta9/splitr/internal/api"
	"github.com/parthgupta9/splitr/internal/auth"
	"github.com/parthgupta9/splitr/internal/config"
	"github.com/parthgupta9/splitr/internal/seed"
	"github.com/parthgupta9/splitr/internal/service"
	"github.com/parthgupta9/splitr/internal/storage/sqlite"
	"github.com/parthgupta9/splitr/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	groupService := service.NewGroupService(store)
	ledgerService := service.NewLedgerService(store)
	contactService := service.NewContactService(store)
	authService := service.NewAuthService(authenticator, jwtManager, store)
	seeder := seed.New(store, groupService, ledgerService)

	router := api.New(authService, groupService, ledgerService, contactService, seeder, jwtManager).Router()

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
