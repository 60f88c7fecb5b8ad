package main

import (
	"fmt"
	"os"

	"pennywise/internal/config"
	"pennywise/internal/devserver"
	"pennywise/internal/devserver/store"
	"pennywise/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	s, err := store.Open(os.Getenv("DEVSERVER_DSN"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := s.Seed(); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	return devserver.New(s).Run()
}
