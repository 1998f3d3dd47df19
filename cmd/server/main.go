package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/starterkit/server/internal/app"
	"github.com/starterkit/server/internal/shared/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize application
	srv, cleanup, err := app.InitializeServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		return 1
	}
	defer cleanup()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return srv.Run(quit)
}
