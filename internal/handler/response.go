package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/usecase"
	"leave-backend/internal/validator"
)

// DateLayout is the wire format of every date in requests.
const DateLayout = "2006-01-02"

var requestValidator = playground.New(playground.WithRequiredStructEnabled())

// ErrorBody is the payload of every rejected request.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
	Global []string            `json:"global,omitempty"`
}

// bind parses the JSON body into dst and runs its struct tags. A nil result
// means dst is usable.
func bind(c *fiber.Ctx, dst any) *ErrorBody {
	if err := c.BodyParser(dst); err != nil {
		return &ErrorBody{Error: "invalid_body"}
	}
	err := requestValidator.Struct(dst)
	if err == nil {
		return nil
	}
	fields := map[string][]string{}
	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			fields[field] = append(fields[field], fe.Tag())
		}
	}
	if len(fields) == 0 {
		return &ErrorBody{Error: err.Error()}
	}
	return &ErrorBody{Error: "validation_failed", Fields: fields}
}

// parseDate reads an optional request date. Unparsable input is recorded on
// field and yields nil, the way a form binder does.
func parseDate(raw, field string, errs *validator.Errors) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		errs.RejectValue(field, validator.ErrTypeMismatch)
		return nil
	}
	return &t
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: "invalid id"})
}

// respond maps usecase errors onto status codes.
func respond(c *fiber.Ctx, logger *zap.SugaredLogger, err error) error {
	var verrs *validator.Errors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{
			Error:  "validation_failed",
			Fields: verrs.Fields(),
			Global: verrs.GlobalErrors(),
		})
	case errors.Is(err, usecase.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorBody{Error: err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(ErrorBody{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(ErrorBody{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorBody{Error: err.Error()})
	}
	logger.Errorw("Request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: "internal error"})
}
