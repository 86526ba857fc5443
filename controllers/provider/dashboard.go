package provider

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
)

// GetDashboard returns a summary of the provider's services and bookings.
func GetDashboard(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var totalServices, totalAppointments, upcoming, confirmed int64

	db.DB.Model(&models.Service{}).
		Where("provider_id = ?", providerID).Count(&totalServices)
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", providerID).Count(&totalAppointments)
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ? AND status = ?", providerID, models.StatusUpcoming).Count(&upcoming)
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ? AND status = ?", providerID, models.StatusConfirmed).Count(&confirmed)

	return c.JSON(fiber.Map{
		"total_services":     totalServices,
		"total_appointments": totalAppointments,
		"upcoming":           upcoming,
		"confirmed":          confirmed,
	})
}
