package main

import (
	"log"
	"os"

	"github.com/inkwell-app/inkwell/internal/authz"
	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/database"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/utils"
)

// Seeds the permission catalog and one administrator holding every
// capability. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)
	database.Migrate(db)

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing enviroment variables: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	userRepo := repository.NewUserRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)

	// Permission catalog, insert-if-absent.
	for _, def := range authz.Catalog() {
		existing, err := permissionRepo.GetByName(def.Name)
		if err != nil {
			log.Fatal("Failed to look up permission:", err)
		}
		if existing != nil {
			continue
		}
		if err := permissionRepo.Create(&models.Permission{
			Name:        def.Name,
			Description: def.Description,
		}); err != nil {
			log.Fatal("Failed to create permission:", err)
		}
		log.Println("Created permission:", def.Name)
	}

	admin, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal("Failed to look up admin:", err)
	}

	if admin == nil {
		hasher, err := utils.NewHasher(cfg.HashSecret)
		if err != nil {
			log.Fatal("Failed to build credential hasher:", err)
		}

		salt, err := hasher.GenerateSalt()
		if err != nil {
			log.Fatal("Failed to generate salt:", err)
		}

		admin = &models.User{
			Email:     adminEmail,
			Username:  adminUsername,
			Validated: true,
		}
		cred := &models.UserCredential{
			Salt:   salt,
			Digest: hasher.Hash(adminPassword, salt),
		}
		if err := userRepo.CreateWithDependents(admin, cred, &models.UserOption{}, &models.UserDetail{}); err != nil {
			log.Fatal("Failed to create admin:", err)
		}
		log.Println("Admin user created:", admin.Username)
	} else {
		log.Println("Admin user already exists:", admin.Username)
	}

	// Grant the full catalog. GrantPermission is a no-op for active links.
	for _, def := range authz.Catalog() {
		permission, err := permissionRepo.GetByName(def.Name)
		if err != nil || permission == nil {
			log.Fatal("Failed to resolve permission:", def.Name)
		}
		if err := userRepo.GrantPermission(admin.ID, permission.ID); err != nil {
			log.Fatal("Failed to grant permission:", err)
		}
	}

	log.Println("Seed completed for", adminEmail)
}
