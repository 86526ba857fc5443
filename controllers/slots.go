package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/redis"
	"github.com/slotwise/booking-app/utils"
)

// GetProviderSlots returns the free "HH:MM" start times for a provider on
// one date. The slot length comes from the service when a service_id is
// given, otherwise from the documented default policy. Results are cached
// briefly per (provider, date, duration).
func GetProviderSlots(c *fiber.Ctx) error {
	providerID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || providerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date is required",
		})
	}
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var service *availability.ServiceInfo
	if serviceID := c.QueryInt("service_id"); serviceID > 0 {
		info, err := db.NewStore(db.DB).ServiceForProvider(c.Context(), uint(serviceID), uint(providerID))
		if err != nil {
			return c.Status(utils.BookingErrorStatus(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		service = &info
	}
	duration := availability.SlotDuration(service)

	if slots, ok := redis.GetCachedSlots(uint(providerID), date, duration); ok {
		return c.JSON(fiber.Map{
			"date":            dateStr,
			"duration":        duration,
			"available_slots": slots,
		})
	}

	slots, err := engine().FreeSlots(c.Context(), uint(providerID), date, duration)
	if err != nil {
		return c.Status(utils.BookingErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.SetCachedSlots(uint(providerID), date, duration, slots)

	return c.JSON(fiber.Map{
		"date":            dateStr,
		"duration":        duration,
		"available_slots": slots,
	})
}
