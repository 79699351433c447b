package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/usecase"
)

type SettingsHandler struct {
	settings *usecase.SettingsUsecase
	logger   *zap.SugaredLogger
}

func NewSettingsHandler(settings *usecase.SettingsUsecase, logger *zap.SugaredLogger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger.Named("http.settings")}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.settings.Get()
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(s)
}

// Update replaces the settings; mail settings take effect with the next
// mail sent.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req model.Settings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: "invalid_body"})
	}
	s, err := h.settings.Update(req)
	if err != nil {
		return respond(c, h.logger, err)
	}
	s.Mail.Password = ""
	return c.JSON(s)
}
