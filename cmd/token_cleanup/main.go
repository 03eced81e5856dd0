package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"collabhub/internal/config"
	"collabhub/internal/database"
	"collabhub/internal/repository"
)

// One-shot sweep of stale refresh tokens, meant to run from cron. Deletes
// rows that are revoked or expired and older than the retention window.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokenRepo := repository.NewRefreshTokenRepository(db)

	deleted, err := tokenRepo.DeleteStale(context.Background(), time.Now().UTC(), cfg.TokenRetention)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("token cleanup completed: refresh_tokens=%d retention=%s", deleted, cfg.TokenRetention)
}
