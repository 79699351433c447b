package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/handler"
	"leave-backend/internal/middleware"
	"leave-backend/internal/model"
)

func SetupSettingsRoutes(app *fiber.App, hdl *handler.SettingsHandler, auth fiber.Handler) {
	api := app.Group("/api/settings", auth, middleware.Role(model.RoleOffice))
	api.Get("/", hdl.Get)
	api.Put("/", hdl.Update)
}

func SetupAccountRoutes(app *fiber.App, hdl *handler.AccountHandler, auth fiber.Handler) {
	api := app.Group("/api/accounts", auth, middleware.Role(model.RoleOffice))
	api.Post("/:year/remaining-days", hdl.UpdateRemainingVacationDays)
}
