package database

import (
	"log"

	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured backend: an embedded sqlite file by default,
// or a remote postgres instance when DATABASE_DRIVER=postgres. Call sites
// only ever see the gorm handle, so the backend swap never touches them.
func Connect(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DatabasePath)
	default:
		log.Fatalf("Unknown database driver: %s", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	if err := db.AutoMigrate(&models.Guest{}); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
