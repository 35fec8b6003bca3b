package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/triagedesk/backend/internal/db"
	"github.com/triagedesk/backend/internal/storage"
)

// Seeds the postgres store with the demo resolved tickets. The in-memory
// store seeds itself at startup and never needs this.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	gdb, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	store := storage.NewGormStore(gdb)
	if err := store.SeedIfEmpty(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Database seeding completed successfully")
}
