package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ninolex-gh/internal/config"
)

// Bootstrap loads configuration from configPath (CONFIG_PATH when empty),
// initializes the logger, and logs startup information for the named command.
func Bootstrap(command, configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log).With(slog.String("cmd", command))

	logger.Debug("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("root", cfg.Paths.Root),
	)

	return cfg, logger, nil
}
