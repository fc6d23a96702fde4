package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Leonn190/Roll/internal/api"
	"github.com/Leonn190/Roll/internal/config"
	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/version"
)

func main() {
	defer logging.Sync()
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	cfg := loadConfigOrExit(env.ConfigPath)
	logging.Info("Card catalogue loaded", logging.Fields{constants.LogFieldSource: env.ConfigPath, "cards": len(cfg.Cards)})

	repo := createRepositoryOrExit(env.DatabasePath, cfg)
	settings := settingsFrom(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	startTimeoutScanner(ctx, repo, settings, env.ScanInterval)

	router := api.NewRouter(repo, settings)

	addr := cfg.ServerAddress
	if env.Port != "" {
		addr = ":" + env.Port
	}
	displayAddr := addr
	if len(addr) > 0 && addr[0] == ':' {
		displayAddr = "http://localhost" + addr
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: displayAddr, "version": version.String()})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
