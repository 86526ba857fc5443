package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
	"github.com/slotwise/booking-app/utils"
)

// GetAllAppointments returns every appointment, with optional provider,
// user, status and date filters. Admin only.
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Service").Preload("Provider").Preload("User")

	if providerID := c.QueryInt("provider_id"); providerID > 0 {
		query = query.Where("provider_id = ?", providerID)
	}
	if userID := c.QueryInt("user_id"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		query = query.Where("date = ?", db.DayOf(date))
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, start_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	for i := range appointments {
		appointments[i].User.Password = ""
		appointments[i].Provider.Password = ""
	}
	return c.JSON(appointments)
}

// BlockUser locks an account out. Blocked users cannot sign in.
func BlockUser(c *fiber.Ctx) error {
	return setBlocked(c, true)
}

// UnblockUser lifts an account block.
func UnblockUser(c *fiber.Ctx) error {
	return setBlocked(c, false)
}

func setBlocked(c *fiber.Ctx, blocked bool) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if user.Role == models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin accounts cannot be blocked",
		})
	}

	if err := db.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "User updated",
		"user":    user,
	})
}
