package handler

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/middleware"
	"leave-backend/internal/model"
	"leave-backend/internal/usecase"
)

// actors loads the authenticated person fresh for every request, so role
// changes and deactivation apply before the token expires.
type actors struct {
	persons *usecase.PersonUsecase
}

func (a actors) current(c *fiber.Ctx) (*model.Person, error) {
	return a.persons.Actor(middleware.UserID(c))
}
