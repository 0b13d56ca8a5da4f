package database

import (
	"log"

	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the shared connection handle. Repositories receive it by
// injection; nothing outside the composition root touches a global.
func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
	return db
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserCredential{},
		&models.UserOption{},
		&models.UserDetail{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Category{},
		&models.Blog{},
		&models.Comment{},
		&models.Message{},
		&models.Like{},
		&models.Request{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
