package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Kamol1dd1nbek/quote-backend/internal/app"
	"github.com/Kamol1dd1nbek/quote-backend/internal/config"
)

func main() {
	// .env is optional; environment variables win over config.yml
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
