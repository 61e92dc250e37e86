package main

import (
	"fmt"
	"os"

	"github.com/samvad-hq/samvad-api-relay/internal/app"
	"github.com/samvad-hq/samvad-api-relay/internal/config"
	"github.com/samvad-hq/samvad-api-relay/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "relay start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.InfoObj("relay starting", "config", cfg)

	relay, err := app.NewRelay(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize relay", "error", err.Error())
		return err
	}

	return relay.Run()
}
