package main

import (
	"errors"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-frontdesk/internal/db"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/validators"
)

// seeduser creates a staff account, or resets its password when the email
// already exists.
//
//	seeduser <email> <password> [name]
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <email> <password> [name]", os.Args[0])
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	name := ""
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	if !validators.IsEmailDomainValid(email) {
		log.Fatalf("email domain of %s does not resolve", email)
	}
	if len(password) < 8 {
		log.Fatalf("password must have at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db := dbpkg.NewDB(cfg)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var user models.StaffUser
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.StaffUser{
			Name:         name,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         "staff",
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("failed to create user: %v", err)
		}
		log.Printf("created staff user %s (%s)", user.Email, user.ID)

	case err != nil:
		log.Fatalf("failed to look up user: %v", err)

	default:
		updates := map[string]any{"password_hash": string(hashed)}
		if name != "" {
			updates["name"] = name
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Fatalf("failed to update user: %v", err)
		}
		log.Printf("updated password for %s", user.Email)
	}
}
