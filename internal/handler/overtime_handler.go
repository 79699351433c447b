package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/usecase"
	"leave-backend/internal/validator"
)

type OvertimeHandler struct {
	actors
	overtime *usecase.OvertimeUsecase
	logger   *zap.SugaredLogger
}

func NewOvertimeHandler(overtime *usecase.OvertimeUsecase, persons *usecase.PersonUsecase, logger *zap.SugaredLogger) *OvertimeHandler {
	return &OvertimeHandler{actors: actors{persons}, overtime: overtime, logger: logger.Named("http.overtime")}
}

type OvertimeRequest struct {
	PersonID  uint    `json:"person_id"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Hours     float64 `json:"hours" validate:"required"`
	Comment   string  `json:"comment" validate:"max=200"`
}

func (h *OvertimeHandler) Record(c *fiber.Ctx) error {
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	var req OvertimeRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	errs := &validator.Errors{}
	start := parseDate(req.StartDate, validator.FieldStartDate, errs)
	end := parseDate(req.EndDate, validator.FieldEndDate, errs)
	if errs.HasErrors() {
		return respond(c, h.logger, errs)
	}

	personID := req.PersonID
	if personID == 0 {
		personID = actor.ID
	}
	overtime, err := h.overtime.Record(usecase.OvertimeRecord{
		PersonID:  personID,
		StartDate: deref(start),
		EndDate:   deref(end),
		Hours:     req.Hours,
		Comment:   req.Comment,
	}, *actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(overtime)
}

func (h *OvertimeHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	list, err := h.overtime.ListOwn(*actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(list)
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
