package main

import (
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/config"
	"github.com/example/pizzeria/internal/database"
	"github.com/example/pizzeria/internal/models"
	"github.com/example/pizzeria/internal/utils"
)

// Seeds an admin account: createadmin [name] [email] [password].
// An existing user with the given email is promoted instead.
func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	args := os.Args[1:]
	name := argOr(args, 0, "Admin")
	email := argOr(args, 1, "admin@pizza.com")
	password := argOr(args, 2, "admin123")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.IsAdmin {
			log.Printf("Admin user already exists with email %s", email)
			return
		}
		existing.IsAdmin = true
		if err := db.Save(&existing).Error; err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		log.Printf("Existing user %s promoted to admin", email)
		return
	case err != gorm.ErrRecordNotFound:
		log.Fatalf("Failed to look up user: %v", err)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin user created: %s <%s>", admin.Name, admin.Email)
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}
