package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/handler"
	"leave-backend/internal/middleware"
	"leave-backend/internal/model"
)

func SetupPersonRoutes(app *fiber.App, hdl *handler.PersonHandler, auth fiber.Handler) {
	app.Post("/api/login", hdl.Login)

	// Hanya office yang boleh membuat akun
	api := app.Group("/api/persons", auth, middleware.Role(model.RoleOffice))
	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
}
