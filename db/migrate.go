package db

import (
	"log"

	"github.com/slotwise/booking-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.DayAvailability{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("Migrations applied")
}
