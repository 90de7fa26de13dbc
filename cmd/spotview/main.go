// spotview shows a ground plane lit by the configured spot light.
//
// Drag to orbit, scroll to zoom, WASD to pan, Q/E to narrow or widen the
// cone, Space to start or stop the yaw sweep and F12 to save a screenshot.
//
// The sweep turns the rig node, which moves the lit cone. The projected
// texture is placed from the light's own position and direction, so it
// stays fixed on the ground while the cone passes over it.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== spotview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := newViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
