package main

import (
	"log"

	"github.com/johnquangdev/account-intel/internal/infrastructure/database"
	"github.com/johnquangdev/account-intel/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.Migrate(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
}
