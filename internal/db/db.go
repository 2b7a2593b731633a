package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens (or creates) the portal database at path.
func Open(path string) *gorm.DB {
	d, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return d
}

// AutoMigrate keeps the schema in sync with the registered models.
func AutoMigrate(d *gorm.DB, models ...any) {
	if err := d.AutoMigrate(models...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}
