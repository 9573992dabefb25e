package main

import (
	"time"

	"github.com/tphakala/birddex-go/cmd"
	"github.com/tphakala/birddex-go/internal/conf"
	"github.com/tphakala/birddex-go/internal/logging"
	"github.com/tphakala/birddex-go/internal/telemetry"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("Failed to load configuration", "error", err)
	}

	if err := telemetry.Init(settings); err != nil {
		// Telemetry is optional; the service runs without it.
		logging.Warn("Telemetry initialization failed", "error", err)
	}
	defer telemetry.Flush(2 * time.Second)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Fatal("Command failed", "error", err)
	}
}
