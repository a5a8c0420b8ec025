package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tmervil/sere/internal/config"
	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
}

// NewApp opens (and migrates) the database and wires the service layer,
// returning the app plus a cleanup func the caller must defer.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPath := cfg.Database.Path

	if dbPath == "" {
		appDir, err := DataDir()
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath = filepath.Join(appDir, "sere.db")
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := service.NewService(dbStore, cfg)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Config:  cfg,
	}, cleanup, nil
}

// DataDir is where the database and config live when no explicit path is
// configured: the user config dir, falling back to ~/.sere.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".sere"), nil
	}

	return filepath.Join(configDir, "sere"), nil
}
