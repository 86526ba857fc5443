package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// lifecycle upkeep.
func StartCronJobs() {
	c := cron.New()
	// Run every 10 minutes to close out appointments whose end time passed
	_, err := c.AddFunc("*/10 * * * *", completePastAppointments)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment completion")
}

// completePastAppointments marks confirmed appointments whose interval has
// fully elapsed as completed. Upcoming (never confirmed) appointments are
// left alone for the provider to resolve.
func completePastAppointments() {
	now := time.Now().UTC()
	today := db.DayOf(now)
	nowHM := availability.FormatMinutes(now.Hour()*60 + now.Minute())

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ?", models.StatusConfirmed).
		Where("date < ? OR (date = ? AND end_time <= ?)", today, today, nowHM).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for completion: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := appointment.UpdateStatus(db.DB, models.StatusCompleted); err != nil {
			log.Printf("Failed to complete appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Marked appointment %d completed", appointment.ID)
	}
}
