package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/slotwise/booking-app/cron"
	"github.com/slotwise/booking-app/db"
	"github.com/slotwise/booking-app/redis"
	"github.com/slotwise/booking-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupAdminRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
