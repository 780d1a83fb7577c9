package lib

import (
	"log"

	"github.com/hackmate-app/hackmate-backend/src/models"
)

// AutoMigrate runs all database migrations
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Notification{},
		&models.Chat{},
		&models.Message{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database migration completed!")
}
