package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/config"
	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/service"
	"github.com/Veraticus/foxy-spend/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadSettings returns the stored settings of the configured user. Users without
// stored settings get the ones described by the configuration.
func loadSettings(ctx context.Context, store service.SettingsRepository, cfg config.Config) (model.Settings, error) {
	settings, err := store.GetSettings(ctx, cfg.User.ID)
	if err == nil {
		return *settings, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return model.Settings{}, err
	}

	slog.Debug("no stored settings, using configuration", "user_id", cfg.User.ID)
	return cfg.Settings()
}

// userNow returns the current time in the user's time zone.
func userNow(settings model.Settings) time.Time {
	return time.Now().In(settings.Location())
}

// userNowFromConfig returns the current time in the configured time zone, for
// commands that do not open the database.
func userNowFromConfig() time.Time {
	settings := model.Settings{Timezone: appConfig.User.Timezone}
	return userNow(settings)
}
