package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
)

// GetAllServices returns all active services, optionally filtered by
// provider or category.
func GetAllServices(c *fiber.Ctx) error {
	query := db.DB.Preload("Provider").Where("is_active = ?", true)

	if providerID := c.QueryInt("provider_id"); providerID > 0 {
		query = query.Where("provider_id = ?", providerID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	for i := range services {
		services[i].Provider.Password = ""
	}

	return c.JSON(services)
}

// GetService returns one service by ID
func GetService(c *fiber.Ctx) error {
	var service models.Service
	if err := db.DB.Preload("Provider").First(&service, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	service.Provider.Password = ""
	return c.JSON(service)
}
