package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
	"leave-backend/internal/validator"
)

type OvertimeNotifier interface {
	SendOvertimeNotification(overtime model.Overtime, comment *model.OvertimeComment)
}

type OvertimeUsecase struct {
	repo      repository.OvertimeRepository
	persons   repository.PersonRepository
	validator *validator.ApplicationValidator
	notifier  OvertimeNotifier
	logger    *zap.SugaredLogger
}

func NewOvertimeUsecase(repo repository.OvertimeRepository, persons repository.PersonRepository, v *validator.ApplicationValidator, notifier OvertimeNotifier, logger *zap.SugaredLogger) *OvertimeUsecase {
	return &OvertimeUsecase{repo: repo, persons: persons, validator: v, notifier: notifier, logger: logger.Named("overtime")}
}

type OvertimeRecord struct {
	PersonID  uint
	StartDate time.Time
	EndDate   time.Time
	Hours     float64
	Comment   string
}

// Record stores overtime for the actor, or for anybody when the actor is
// office, and informs the overtime office.
func (u *OvertimeUsecase) Record(in OvertimeRecord, actor model.Person) (*model.Overtime, error) {
	errs := &validator.Errors{}
	if in.StartDate.After(in.EndDate) {
		errs.Reject(validator.ErrPeriod)
	}
	if in.Hours == 0 {
		errs.RejectValue("hours", validator.ErrMandatoryField)
	}
	u.validator.ValidateComment(in.Comment, false, errs)
	if errs.HasErrors() {
		return nil, errs
	}

	personID := in.PersonID
	if personID == 0 {
		personID = actor.ID
	}
	if personID != actor.ID && !actor.HasRole(model.RoleOffice) {
		return nil, fmt.Errorf("record overtime for person %d: %w", personID, ErrForbidden)
	}
	person, err := u.persons.FindByID(personID)
	if err := lookup(err, "person", personID); err != nil {
		return nil, err
	}

	overtime := model.Overtime{
		PersonID:  personID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Hours:     in.Hours,
	}
	var comment *model.OvertimeComment
	if in.Comment != "" {
		comment = &model.OvertimeComment{PersonID: actor.ID, Action: "CREATED", Text: in.Comment}
	}
	if err := u.repo.Create(&overtime, comment); err != nil {
		return nil, fmt.Errorf("create overtime: %w", err)
	}
	overtime.Person = *person
	if comment != nil {
		comment.Person = actor
	}

	u.notifier.SendOvertimeNotification(overtime, comment)
	return &overtime, nil
}

func (u *OvertimeUsecase) ListOwn(actor model.Person) ([]model.Overtime, error) {
	return u.repo.GetByPersonID(actor.ID)
}
