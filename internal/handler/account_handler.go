package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/usecase"
)

type AccountHandler struct {
	accounts *usecase.AccountUsecase
	logger   *zap.SugaredLogger
}

func NewAccountHandler(accounts *usecase.AccountUsecase, logger *zap.SugaredLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger.Named("http.account")}
}

// UpdateRemainingVacationDays carries the leftover days of :year over into
// the following year.
func (h *AccountHandler) UpdateRemainingVacationDays(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year < 1970 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: "invalid year"})
	}
	accounts, err := h.accounts.UpdateRemainingVacationDays(year)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(accounts)
}
