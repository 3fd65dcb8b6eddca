package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/appacc/pkg/cli"
)

func main() {
	// .env is optional; flags and real env vars still win
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
