package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
	"github.com/slotwise/booking-app/redis"
	"github.com/slotwise/booking-app/utils"
)

type bookingInput struct {
	ProviderID uint   `json:"provider_id"`
	ServiceID  uint   `json:"service_id"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes"`
}

// CreateAppointment books a slot for the logged-in user. Validation and the
// conflict check run inside the availability engine; the insert is atomic
// with the final check.
func CreateAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	input := new(bookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	req := availability.BookingRequest{
		UserID:     userID,
		ProviderID: input.ProviderID,
		ServiceID:  input.ServiceID,
		Start:      input.StartTime,
		End:        input.EndTime,
		Notes:      input.Notes,
	}
	if input.Date != "" {
		date, err := utils.ParseDate(input.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid date",
				Error:   err.Error(),
			})
		}
		req.Date = date
	}

	reservation, err := engine().ValidateAndBook(c.Context(), req)
	if err != nil {
		return c.Status(utils.BookingErrorStatus(err)).JSON(utils.ErrorResponse{
			Message: "Failed to book appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderDay(reservation.ProviderID, reservation.Date)

	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Provider").
		Where("booking_ref = ?", reservation.BookingRef).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load created appointment",
			Error:   err.Error(),
		})
	}
	appointment.Provider.Password = ""

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetMyAppointments returns the logged-in user's appointments with optional
// status and date filters.
func GetMyAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Preload("Service").Preload("Provider").
		Where("user_id = ?", userID)

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
	return c.JSON(appointments)
}

// GetAppointment returns one appointment, visible only to its owner, its
// provider, or an admin.
func GetAppointment(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Provider").Preload("User").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if appointment.UserID != userID && appointment.ProviderID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this appointment",
		})
	}
	appointment.User.Password = ""
	appointment.Provider.Password = ""

	return c.JSON(appointment)
}

// CancelAppointment lets the owner cancel their own booking.
func CancelAppointment(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.UserID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only cancel your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateProviderDay(appointment.ProviderID, appointment.Date)

	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled",
		"appointment": appointment,
	})
}

// DeleteAppointment removes an appointment entirely. Owner, provider and
// admin may delete.
func DeleteAppointment(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.UserID != userID && appointment.ProviderID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this appointment",
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderDay(appointment.ProviderID, appointment.Date)

	return c.SendStatus(fiber.StatusNoContent)
}
