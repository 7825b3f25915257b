package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/sqlite"
	"weighttrack/internal/app"
	"weighttrack/internal/config"
	"weighttrack/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment())

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("db open failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	store := app.NewStore(db, sqlite.NewSettingsRepo(db))

	// Warm the snapshot so the first request sees current state.
	ctx := context.Background()
	if err := store.LoadSettings(ctx); err != nil {
		slog.Error("load settings failed", "error", err)
		os.Exit(1)
	}
	if err := store.LoadEntries(ctx); err != nil {
		slog.Error("load entries failed", "error", err)
		os.Exit(1)
	}

	h := adapthttp.New(store, cfg.WebDir).Handler()
	slog.Info("server starting", "addr", cfg.Addr, "env", cfg.AppEnv, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
