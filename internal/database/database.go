package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" driver

	"github.com/almondloverr/CRM/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	// SQLite ships with foreign keys off; cascade deletes depend on
	// it. The DSN pragma applies to every pooled connection.
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates/updates the schema for every entity. Parents go
// first so that cascade foreign keys resolve on fresh databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Department{},
		&domain.JobTitle{},
		&domain.Employee{},
		&domain.Client{},
		&domain.Firm{},
		&domain.Contract{},
		&domain.Order{},
		&domain.TechnicalSpecification{},
		&domain.Material{},
		&domain.PickupDelivery{},
		&domain.Activity{},
		&domain.Event{},
	)
}
