package main

import (
	"os"

	"pennywise/internal/commands"
	"pennywise/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
