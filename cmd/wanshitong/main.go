// Package main is the entry point for the wanshitong model viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/AIEngineerX/wanshitong/internal/config"
	"github.com/AIEngineerX/wanshitong/internal/logger"
	"github.com/AIEngineerX/wanshitong/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Viewer.Model == "" {
		fmt.Fprintln(os.Stderr, "No model given: pass -model <url-or-path> or set viewer.model in config.yaml")
		os.Exit(2)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== wanshitong model viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg, nil)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Load(); err != nil {
		logger.Error("failed to load model", zap.Error(err))
		os.Exit(1)
	}

	v.Run()

	logger.Info("viewer closed normally")
}
