package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/controllers"
	"github.com/slotwise/booking-app/controllers/provider"
	"github.com/slotwise/booking-app/middleware"
	"github.com/slotwise/booking-app/models"
)

// SetupProviderRoutes configures the public slot lookup and the
// provider-only schedule management routes
func SetupProviderRoutes(app *fiber.App) {
	// Public: anyone can look up a provider's free slots
	app.Get("/providers/:id/slots", controllers.GetProviderSlots)

	group := app.Group("/provider", middleware.Protected(), middleware.RequireRole(models.RoleProvider, models.RoleAdmin))
	group.Get("/dashboard", provider.GetDashboard)

	group.Get("/appointments", provider.GetAppointments)
	group.Patch("/appointments/:id/confirm", provider.ConfirmAppointment)
	group.Patch("/appointments/:id/cancel", provider.CancelAppointment)
	group.Patch("/appointments/:id/reschedule", provider.RescheduleAppointment)

	group.Get("/availability", provider.GetAvailability)
	group.Put("/availability", provider.ReplaceAvailability)

	group.Get("/services", provider.GetServices)
	group.Post("/services", provider.CreateService)
	group.Put("/services/:id", provider.UpdateService)
	group.Delete("/services/:id", provider.DeleteService)
}
