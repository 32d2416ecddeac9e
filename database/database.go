package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Group{},
		&models.Student{},
		&models.DismissedStudent{},
		&models.Account{},
		&models.Qualification{},
		&models.Specialization{},
		&models.Module{},
		&models.Topic{},
		&models.Schedule{},
		&models.Mark{},
		&models.CompletedTopic{},
		&models.Notification{},
	)
}
