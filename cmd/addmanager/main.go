package main

import (
	"log"
	"os"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
)

// Seeds the administrative login account. There is no signup endpoint; run
// this once after the schema bootstrap.
func main() {
	email := os.Getenv("MANAGER_EMAIL")
	password := os.Getenv("MANAGER_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("MANAGER_EMAIL and MANAGER_PASSWORD must be set")
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	manager := &models.Manager{Email: email, Password: password}
	if err := database.CreateManager(db, manager); err != nil {
		log.Fatal("Failed to create manager: ", err)
	}

	log.Printf("Manager created successfully: %s", manager.Email)
}
