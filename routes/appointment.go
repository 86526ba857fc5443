package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/controllers"
	"github.com/slotwise/booking-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())
	appointment.Get("/", controllers.GetMyAppointments)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Patch("/:id/cancel", controllers.CancelAppointment)
	appointment.Delete("/:id", controllers.DeleteAppointment)
}
