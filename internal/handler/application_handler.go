package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/usecase"
	"leave-backend/internal/validator"
)

type ApplicationHandler struct {
	actors
	apps   *usecase.ApplicationUsecase
	logger *zap.SugaredLogger
}

func NewApplicationHandler(apps *usecase.ApplicationUsecase, persons *usecase.PersonUsecase, logger *zap.SugaredLogger) *ApplicationHandler {
	return &ApplicationHandler{actors: actors{persons}, apps: apps, logger: logger.Named("http.application")}
}

// ApplicationRequest carries dates as yyyy-mm-dd strings; parse failures are
// reported per field together with the validation result.
type ApplicationRequest struct {
	PersonID             uint   `json:"person_id"`
	VacationType         string `json:"vacation_type" validate:"required"`
	DayLength            string `json:"day_length" validate:"required,oneof=FULL MORNING NOON"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	StartDateHalf        string `json:"start_date_half"`
	Reason               string `json:"reason"`
	Address              string `json:"address"`
	Comment              string `json:"comment"`
	HolidayReplacementID *uint  `json:"holiday_replacement_id"`
	Force                bool   `json:"force"`
}

func (r ApplicationRequest) form(errs *validator.Errors) model.ApplicationForm {
	return model.ApplicationForm{
		PersonID:             r.PersonID,
		VacationType:         model.VacationType(r.VacationType),
		DayLength:            model.DayLength(r.DayLength),
		StartDate:            parseDate(r.StartDate, validator.FieldStartDate, errs),
		EndDate:              parseDate(r.EndDate, validator.FieldEndDate, errs),
		StartDateHalf:        parseDate(r.StartDateHalf, validator.FieldStartDateHalf, errs),
		Reason:               r.Reason,
		Address:              r.Address,
		Comment:              r.Comment,
		HolidayReplacementID: r.HolidayReplacementID,
	}
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type ReferRequest struct {
	LoginName string `json:"login_name" validate:"required"`
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}

	var req ApplicationRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	errs := &validator.Errors{}
	app, warning, err := h.apps.Apply(req.form(errs), errs, *actor, req.Force)
	if warning != nil {
		// Periode di masa lalu: client harus konfirmasi dengan force
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "period_in_past",
			"time_error": warning.Code,
			"set_force":  warning.Force,
		})
	}
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	apps, err := h.apps.ListOwn(*actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(apps)
}

func (h *ApplicationHandler) ListWaiting(c *fiber.Ctx) error {
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	apps, err := h.apps.ListWaiting(*actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(apps)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	app, err := h.apps.Get(id, *actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Comments(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	comments, err := h.apps.Comments(id, *actor)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(comments)
}

// decide runs one of the commented transitions: allow, reject or cancel.
func (h *ApplicationHandler) decide(c *fiber.Ctx, transition func(uint, model.Person, string) (*model.Application, error)) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	var req CommentRequest
	if len(c.Body()) > 0 {
		if body := bind(c, &req); body != nil {
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
	}
	app, err := transition(id, *actor, req.Comment)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Allow(c *fiber.Ctx) error  { return h.decide(c, h.apps.Allow) }
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error { return h.decide(c, h.apps.Reject) }
func (h *ApplicationHandler) Cancel(c *fiber.Ctx) error { return h.decide(c, h.apps.Cancel) }

func (h *ApplicationHandler) Remind(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	if err := h.apps.Remind(id, *actor); err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "reminder sent"})
}

func (h *ApplicationHandler) Refer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	actor, err := h.current(c)
	if err != nil {
		return respond(c, h.logger, err)
	}
	var req ReferRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	if err := h.apps.Refer(id, req.LoginName, *actor); err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "application referred"})
}
