package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/mockapi"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	store := mockapi.NewStore()
	mockapi.Seed(store)

	secret := os.Getenv("MOCKAPI_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.NewServer(store, secret, logger)
	if err := srv.ListenAndServe(ctx, ":"+cfg.MockAPIPort); err != nil {
		logger.Error("mock backend failed", "error", err)
		os.Exit(1)
	}
	logger.Info("mock backend stopped")
}
