package utils

import (
	"log"
	"os"
)

// LoggerConfig tunes the request logger.
type LoggerConfig struct {
	Output *os.File
	Prefix string
}

// InitLogger builds the logger used by main and the logging middleware.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "[eduquest] "
	}

	return log.New(cfg.Output, cfg.Prefix, log.LstdFlags|log.LUTC)
}
