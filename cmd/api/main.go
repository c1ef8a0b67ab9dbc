package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pethaven/pethaven-api/internal/app/api"
)

func main() {
	// Missing .env is fine; real deployments set environment variables directly.
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("pethaven api: %v", err)
	}
}
