package main

import (
	"os"

	"github.com/Leonn190/Roll/internal/config"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/service"
	"github.com/Leonn190/Roll/internal/shop"
	"github.com/Leonn190/Roll/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid roll configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a roll_config.yaml with a 'card_list' (name, rarity, synergies, stats) or a 'card_csv' sheet path",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db, cfg.Cards, cfg.PublicMatchesTTL)
}

func settingsFrom(cfg *config.LoadedConfig) service.Settings {
	return service.Settings{
		Catalog:      shop.NewCatalog(cfg.Cards),
		Rules:        cfg.Rules,
		GridCols:     cfg.GridCols,
		GridRows:     cfg.GridRows,
		MaxRounds:    cfg.MaxRounds,
		DiceFaces:    cfg.DiceFaces,
		DraftTimeout: cfg.DraftTimeout,
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Warn("Environment variable not set", logging.Fields{"var": v})
		}
	}
}
