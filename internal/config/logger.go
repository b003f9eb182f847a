package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the entrypoint logger. An empty path means stderr;
// "off" disables logging.
func NewLogger(debug bool, path string) (*zap.Logger, error) {
	if path == "off" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
