package provider

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
	"github.com/slotwise/booking-app/redis"
	"github.com/slotwise/booking-app/utils"
)

// GetAppointments returns the logged-in provider's appointments with
// optional status and date filters.
func GetAppointments(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Preload("Service").Preload("User").
		Where("provider_id = ?", providerID)

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
	}
	return c.JSON(appointments)
}

// ConfirmAppointment moves an upcoming appointment to confirmed.
func ConfirmAppointment(c *fiber.Ctx) error {
	return transition(c, models.StatusConfirmed)
}

// CancelAppointment cancels an upcoming or confirmed appointment on the
// provider's schedule, freeing its slot.
func CancelAppointment(c *fiber.Ctx) error {
	return transition(c, models.StatusCancelled)
}

func transition(c *fiber.Ctx, newStatus models.AppointmentStatus) error {
	providerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.ProviderID != providerID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, newStatus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if newStatus == models.StatusCancelled {
		redis.InvalidateProviderDay(appointment.ProviderID, appointment.Date)
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated",
		"appointment": appointment,
	})
}

// RescheduleAppointment moves an upcoming or confirmed appointment to a new
// date or interval. The new interval is revalidated with the appointment
// itself excluded from the conflict scan, and the move is atomic with that
// check.
func RescheduleAppointment(c *fiber.Ctx) error {
	providerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var input struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if input.Date == "" || input.StartTime == "" || input.EndTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": availability.ErrMissingField.Error(),
		})
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	start, err := availability.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	end, err := availability.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !availability.ValidRange(start, end) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": availability.ErrInvalidRange.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.ProviderID != providerID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only reschedule your own appointments",
		})
	}
	if appointment.Status != models.StatusUpcoming && appointment.Status != models.StatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only upcoming or confirmed appointments can be rescheduled",
		})
	}

	oldDate := appointment.Date
	err = db.NewStore(db.DB).MoveAppointment(c.Context(), &appointment, date,
		availability.FormatMinutes(start), availability.FormatMinutes(end))
	if err != nil {
		return c.Status(utils.BookingErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateProviderDay(appointment.ProviderID, oldDate)
	redis.InvalidateProviderDay(appointment.ProviderID, appointment.Date)

	return c.JSON(fiber.Map{
		"message":     "Appointment rescheduled",
		"appointment": appointment,
	})
}
