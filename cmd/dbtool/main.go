package main

import (
	"context"
	"flag"
	"food-rescue-service/internal/adapters/postgres"
	"food-rescue-service/internal/config"
	"food-rescue-service/internal/platform/db"
	"log"
)

func main() {
	cfg := config.Load()

	seedPath := flag.String("seed", cfg.SeedPath, "directory holding donors.json, recipients.json and drivers.json")
	skipSeed := flag.Bool("migrate-only", false, "apply migrations without seeding")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Applying migrations...")
	if err := postgres.Migrate(conn); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Schema ready.")

	if *skipSeed {
		return
	}

	log.Println("Seeding database...")
	if err := postgres.SeedFromJSON(ctx, conn, *seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
