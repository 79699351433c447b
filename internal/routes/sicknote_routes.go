package routes

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/handler"
	"leave-backend/internal/middleware"
	"leave-backend/internal/model"
)

func SetupSickNoteRoutes(app *fiber.App, hdl *handler.SickNoteHandler, auth fiber.Handler) {
	api := app.Group("/api/sicknotes", auth, middleware.Role(model.RoleOffice))
	api.Post("/end-of-sick-pay", hdl.NotifyEndingSickPay)
	api.Post("/:id/convert", hdl.ConvertToVacation)
	api.Post("/:id/end-of-sick-pay", hdl.NotifyEndOfSickPay)
}
