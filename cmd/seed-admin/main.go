// Provisioning script for the role table and the first admin account
// cmd/seed-admin/main.go
package main

import (
	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/utils"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	nombre := flag.String("nombre", "Administrador", "display name for the admin account")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required, min 8 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: seed-admin -email <email> -password <password> [-nombre <name>]")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatal("Invalid email address")
	}
	if ok, message := utils.ValidatePassword(*password); !ok {
		log.Fatal(message)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	// Provision the fixed role set
	roles := map[int]string{
		models.RoleAdmin:       "admin",
		models.RoleCoordinador: "coordinador",
		models.RoleAuxiliar:    "auxiliar",
		models.RoleUsuario:     "usuario",
	}
	now := time.Now()
	for id, name := range roles {
		var count int64
		config.DB.Model(&models.Role{}).Where("role_id = ?", id).Count(&count)
		if count > 0 {
			continue
		}
		role := models.Role{RoleID: id, Role: name, CreateAt: &now, UpdateAt: &now}
		if err := config.DB.Create(&role).Error; err != nil {
			log.Fatalf("Failed to create role %s: %v", name, err)
		}
		log.Printf("Created role %s\n", name)
	}

	// Skip if the account already exists
	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", *email).Count(&count)
	if count > 0 {
		log.Fatalf("User %s already exists", *email)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Nombre:   *nombre,
		Email:    *email,
		Password: hashed,
		RoleID:   models.RoleAdmin,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("Admin account %s created successfully\n", *email)
}
