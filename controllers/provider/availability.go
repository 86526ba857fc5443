package provider

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
	"github.com/slotwise/booking-app/redis"
)

type templateDayInput struct {
	Weekday     time.Weekday `json:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	IsAvailable bool         `json:"is_available"`
}

// GetAvailability returns the logged-in provider's weekly template.
func GetAvailability(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var days []models.DayAvailability
	if err := db.DB.Where("provider_id = ?", providerID).
		Order("weekday asc").Find(&days).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}
	return c.JSON(days)
}

// ReplaceAvailability overwrites the provider's weekly template wholesale.
// Every entry is validated up front; a day marked available must carry a
// well-formed, non-empty time range. There is no per-day patch.
func ReplaceAvailability(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		Days []templateDayInput `json:"days"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if len(input.Days) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one day entry is required",
		})
	}

	seen := map[time.Weekday]bool{}
	for _, day := range input.Days {
		if day.Weekday < time.Sunday || day.Weekday > time.Saturday {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid weekday",
			})
		}
		if seen[day.Weekday] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Duplicate weekday entry",
			})
		}
		seen[day.Weekday] = true

		if !day.IsAvailable {
			continue
		}
		start, err := availability.ParseTimeOfDay(day.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		end, err := availability.ParseTimeOfDay(day.EndTime)
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
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", providerID).
			Delete(&models.DayAvailability{}).Error; err != nil {
			return err
		}
		for _, day := range input.Days {
			entry := models.DayAvailability{
				ProviderID:  providerID,
				Weekday:     day.Weekday,
				IsAvailable: day.IsAvailable,
			}
			if day.IsAvailable {
				// Store canonical zero-padded form
				start, _ := availability.ParseTimeOfDay(day.StartTime)
				end, _ := availability.ParseTimeOfDay(day.EndTime)
				entry.StartTime = availability.FormatMinutes(start)
				entry.EndTime = availability.FormatMinutes(end)
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update availability",
		})
	}

	redis.InvalidateProvider(providerID)

	var days []models.DayAvailability
	if err := db.DB.Where("provider_id = ?", providerID).
		Order("weekday asc").Find(&days).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}
	return c.JSON(days)
}
