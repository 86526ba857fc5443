package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/controllers"
	"github.com/slotwise/booking-app/middleware"
	"github.com/slotwise/booking-app/models"
)

// SetupAdminRoutes configures moderation routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	admin.Get("/appointments", controllers.GetAllAppointments)
	admin.Patch("/users/:id/block", controllers.BlockUser)
	admin.Patch("/users/:id/unblock", controllers.UnblockUser)
}
