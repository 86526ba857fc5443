package provider

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/models"
)

// GetServices returns the logged-in provider's services, active or not.
func GetServices(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var services []models.Service
	if err := db.DB.Where("provider_id = ?", providerID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(services)
}

// CreateService creates a new service owned by the logged-in provider.
func CreateService(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if service.Title == "" || service.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and a positive duration are required",
		})
	}

	newService := models.Service{
		Title:           service.Title,
		Category:        service.Category,
		Description:     service.Description,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
		IsActive:        true,
		ProviderID:      providerID,
	}
	if err := db.DB.Create(&newService).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(newService)
}

// UpdateService updates a service the provider owns. The provider binding
// itself never changes.
func UpdateService(c *fiber.Ctx) error {
	providerID, _ := c.Locals("userID").(uint)

	var existing models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), providerID).
		First(&existing).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	input := new(models.Service)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	existing.Title = input.Title
	existing.Category = input.Category
	existing.Description = input.Description
	existing.Price = input.Price
	existing.DurationMinutes = input.DurationMinutes
	existing.IsActive = input.IsActive

	if err := db.DB.Save(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(existing)
}

// DeleteService removes a service the provider owns.
func DeleteService(c *fiber.Ctx) error {
	providerID, _ := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), providerID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
