package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/drydock-labs/drydock/internal/adapters/driving/cli"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
