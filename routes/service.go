package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/controllers"
)

// SetupServiceRoutes configures the public service catalog routes
func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
}
