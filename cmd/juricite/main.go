package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/avocatech/juricite/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
