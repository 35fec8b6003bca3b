package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/triagedesk/backend/internal/db"
)

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

	log.Println("Database migrations completed successfully")
}
