package main

import (
	"log"
	"os"

	"go-densitometer/internal/cli"
	"go-densitometer/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)
	if err := app.Run(os.Args); err != nil {
		// cli.Exit errors have already set the process exit code
		log.Fatal(err)
	}
}
