package handlers

import (
	"mantis/internal/app"

	"github.com/gofiber/fiber/v2"
)

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewMaintenanceHandler(*app, api).Register()
	NewMachineHandler(*app, api).Register()
	NewQuestionHandler(*app, api).Register()
	NewPerformanceHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()

	return nil
}
