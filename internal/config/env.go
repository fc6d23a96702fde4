package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the process settings that come from the environment rather
// than the YAML file.
type Env struct {
	ConfigPath   string        `env:"ROLL_CONFIG"       envDefault:"./roll_config.yaml"`
	DatabasePath string        `env:"ROLL_DB"           envDefault:"roll.db"`
	ScanInterval time.Duration `env:"ROLL_TIMEOUT_SCAN" envDefault:"1s"`
	// Port overrides server.address when set.
	Port         string        `env:"PORT"`
}

// ParseEnv loads Env from the environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
