package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/handler"
)

func SetupApplicationRoutes(app *fiber.App, hdl *handler.ApplicationHandler, auth fiber.Handler) {
	api := app.Group("/api/applications", auth)

	// Endpoint untuk Pegawai
	api.Post("/", hdl.Apply)
	api.Get("/", hdl.ListOwn)
	api.Post("/:id/remind", hdl.Remind)
	api.Put("/:id/cancel", hdl.Cancel)

	// Endpoint untuk Atasan (Approval)
	api.Get("/waiting", hdl.ListWaiting)
	api.Put("/:id/allow", hdl.Allow)
	api.Put("/:id/reject", hdl.Reject)
	api.Post("/:id/refer", hdl.Refer)

	api.Get("/:id", hdl.Get)
	api.Get("/:id/comments", hdl.Comments)
}
