package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTest opens a fresh in-memory database and migrates the schema.
// Each call returns an isolated database; the global DB is also pointed
// at it so handlers under test see the same state.
func ConnectTest() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}
