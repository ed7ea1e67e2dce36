package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/joanmiespada/backender/internal/infra/config"
)

func main() {
	_ = godotenv.Load()

	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps to migrate, 0 means all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sourceURL := fmt.Sprintf("file://%s", cfg.Postgres.MigrationsPath)

	migrator, err := migrate.New(sourceURL, cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("failed to init migrator: %v", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			log.Printf("close migration source: %v", sourceErr)
		}
		if dbErr != nil {
			log.Printf("close migration database: %v", dbErr)
		}
	}()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = migrator.Steps(*steps)
		} else {
			err = migrator.Up()
		}
	case "down":
		if *steps > 0 {
			err = migrator.Steps(-*steps)
		} else {
			err = migrator.Down()
		}
	default:
		log.Fatalf("unknown direction %q, expected up or down", *direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("no migrations to apply")
		return
	}

	log.Printf("migrations %s applied successfully", *direction)
}
