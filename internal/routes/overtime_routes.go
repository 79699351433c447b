package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/handler"
)

func SetupOvertimeRoutes(app *fiber.App, hdl *handler.OvertimeHandler, auth fiber.Handler) {
	api := app.Group("/api/overtime", auth)
	api.Post("/", hdl.Record)
	api.Get("/", hdl.ListOwn)
}
