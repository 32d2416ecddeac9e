package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/models"
)

// Creates a superuser account. Run once after the first migration:
//
//	go run ./cmd/createsuperuser -login admin -password secret
func main() {
	login := flag.String("login", "admin", "account login")
	password := flag.String("password", "", "account password (default password when empty)")
	name := flag.String("name", "Администратор", "first name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if *password == "" {
		*password = cfg.DefaultPassword
	}

	database.Connect(cfg)

	var n int64
	database.DB.Model(&models.Account{}).Where("login = ?", *login).Count(&n)
	if n > 0 {
		log.Fatalf("account %q already exists", *login)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	account := models.Account{
		Login:        *login,
		PasswordHash: string(hash),
		FirstName:    *name,
		IsSuperuser:  true,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		log.Fatalf("create account: %v", err)
	}
	log.Printf("superuser %q created (id=%d)", account.Login, account.ID)
}
