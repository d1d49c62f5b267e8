package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	path := ""
	if len(envFilePath) > 0 {
		path = envFilePath[0]
	}
	var err error
	if path != "" {
		err = godotenv.Load(path)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("app config loaded",
		"env", cfg.Env,
		"store_path", cfg.Store.Path,
		"log_format", cfg.Log.Format,
	)
	return &cfg, nil
}
