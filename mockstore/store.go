// Package mockstore is the stand-in for the platform's REST data store: a
// json-server compatible collection server backed by GORM. Records are kept
// as JSON documents keyed by (collection, record id), which keeps every
// collection generic; the one special case is the progress collection, whose
// writes are version-checked inside a transaction so a stale update is
// rejected instead of silently winning.
package mockstore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduquest/config"
)

// Document is one record of one collection. Data holds the full JSON body,
// including the id field, so reads can be served verbatim.
type Document struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"uniqueIndex:idx_collection_record"`
	RecordID   int    `gorm:"uniqueIndex:idx_collection_record"`
	Data       string
}

// OpenDB connects to the configured database (sqlite file by default,
// postgres when selected) and migrates the document table.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}
	return db, nil
}
