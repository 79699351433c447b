package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/usecase"
)

type SickNoteHandler struct {
	actors
	notes  *usecase.SickNoteUsecase
	logger *zap.SugaredLogger
}

func NewSickNoteHandler(notes *usecase.SickNoteUsecase, persons *usecase.PersonUsecase, logger *zap.SugaredLogger) *SickNoteHandler {
	return &SickNoteHandler{actors: actors{persons}, notes: notes, logger: logger.Named("http.sicknote")}
}

type ConvertSickNoteRequest struct {
	VacationType string `json:"vacation_type"`
	Reason       string `json:"reason"`
}

// ConvertToVacation turns the sick note into allowed leave over the same
// period.
func (h *SickNoteHandler) ConvertToVacation(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	var req ConvertSickNoteRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	app, err := h.notes.ConvertToVacation(id, model.ApplicationForm{
		VacationType: model.VacationType(req.VacationType),
		Reason:       req.Reason,
	}, *actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *SickNoteHandler) NotifyEndOfSickPay(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.notes.NotifyEndOfSickPay(id); err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "notification sent"})
}

// NotifyEndingSickPay sweeps all active sick notes, e.g. from a nightly cron.
func (h *SickNoteHandler) NotifyEndingSickPay(c *fiber.Ctx) error {
	n, err := h.notes.NotifyEndingSickPay()
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"notified": n})
}
