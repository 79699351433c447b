package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/usecase"
)

type PersonHandler struct {
	persons *usecase.PersonUsecase
	logger  *zap.SugaredLogger
}

func NewPersonHandler(persons *usecase.PersonUsecase, logger *zap.SugaredLogger) *PersonHandler {
	return &PersonHandler{persons: persons, logger: logger.Named("http.person")}
}

type LoginRequest struct {
	LoginName string `json:"login_name" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type CreatePersonRequest struct {
	LoginName     string   `json:"login_name" validate:"required,max=50"`
	FirstName     string   `json:"first_name" validate:"max=50"`
	LastName      string   `json:"last_name" validate:"max=50"`
	Email         string   `json:"email" validate:"required,email"`
	Roles         []string `json:"roles" validate:"dive,oneof=USER DEPARTMENT_HEAD SECOND_STAGE_AUTHORITY BOSS OFFICE INACTIVE"`
	Notifications []string `json:"notifications" validate:"dive,oneof=NOTIFICATION_USER NOTIFICATION_DEPARTMENT_HEAD NOTIFICATION_SECOND_STAGE_AUTHORITY NOTIFICATION_BOSS NOTIFICATION_OFFICE OVERTIME_NOTIFICATION_OFFICE"`
}

func (h *PersonHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	token, person, err := h.persons.Login(req.LoginName, req.Password)
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   token,
		"person":  person,
	})
}

func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var req CreatePersonRequest
	if body := bind(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	in := usecase.NewPerson{
		LoginName: req.LoginName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	for _, r := range req.Roles {
		in.Roles = append(in.Roles, model.Role(r))
	}
	for _, n := range req.Notifications {
		in.Notifications = append(in.Notifications, model.Notification(n))
	}

	person, err := h.persons.Create(in)
	if err != nil {
		if errors.Is(err, model.ErrConflictingNotifications) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: err.Error()})
		}
		return respond(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(person)
}

func (h *PersonHandler) GetAll(c *fiber.Ctx) error {
	people, err := h.persons.GetAll()
	if err != nil {
		return respond(c, h.logger, err)
	}
	return c.JSON(people)
}
