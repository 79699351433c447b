package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
	"leave-backend/internal/validator"
)

type SickNoteNotifier interface {
	SendSickNoteConvertedToVacationNotification(application model.Application)
	SendEndOfSickPayNotification(sickNote model.SickNote)
}

type SickNoteUsecase struct {
	notes     repository.SickNoteRepository
	apps      repository.ApplicationRepository
	settings  repository.SettingsRepository
	validator *validator.ApplicationValidator
	notifier  SickNoteNotifier
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewSickNoteUsecase(
	notes repository.SickNoteRepository,
	apps repository.ApplicationRepository,
	settings repository.SettingsRepository,
	v *validator.ApplicationValidator,
	notifier SickNoteNotifier,
	now func() time.Time,
	logger *zap.SugaredLogger,
) *SickNoteUsecase {
	if now == nil {
		now = time.Now
	}
	return &SickNoteUsecase{
		notes:     notes,
		apps:      apps,
		settings:  settings,
		validator: v,
		notifier:  notifier,
		now:       now,
		logger:    logger.Named("sicknote"),
	}
}

// ConvertToVacation turns an active sick note into allowed leave. Only the
// reason and the vacation type come from the form; the period is the sick
// note's.
func (u *SickNoteUsecase) ConvertToVacation(id uint, form model.ApplicationForm, actor model.Person) (*model.Application, error) {
	if !actor.HasRole(model.RoleOffice) {
		return nil, fmt.Errorf("convert sick note %d: %w", id, ErrForbidden)
	}
	errs := &validator.Errors{}
	if form.VacationType == "" {
		form.VacationType = model.VacationTypeHoliday
	}
	if !form.VacationType.Valid() {
		errs.RejectValue(FieldVacationType, validator.ErrTypeMismatch)
	}
	u.validator.ValidateShortenedForm(form, errs)
	if errs.HasErrors() {
		return nil, errs
	}

	note, err := u.notes.GetByID(id)
	if err := lookup(err, "sick note", id); err != nil {
		return nil, err
	}
	if note.Status != model.SickNoteActive {
		return nil, fmt.Errorf("convert sick note %d in status %s: %w", id, note.Status, ErrInvalidState)
	}

	dayLength := note.DayLength
	if dayLength == "" {
		dayLength = model.DayLengthFull
	}
	today := u.now()
	app := model.Application{
		PersonID:        note.PersonID,
		ApplierID:       actor.ID,
		BossID:          &actor.ID,
		VacationType:    form.VacationType,
		DayLength:       dayLength,
		StartDate:       note.StartDate,
		EndDate:         note.EndDate,
		ApplicationDate: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
		Reason:          form.Reason,
		Status:          model.StatusAllowed,
	}
	converted := model.ApplicationComment{PersonID: actor.ID, Action: model.ActionConverted}
	if err := u.apps.CreateWithComment(&app, &converted); err != nil {
		return nil, fmt.Errorf("create application for sick note %d: %w", id, err)
	}

	note.Status = model.SickNoteConverted
	if err := u.notes.Update(note); err != nil {
		return nil, fmt.Errorf("update sick note %d: %w", id, err)
	}

	app.Person, app.Applier, app.Boss = note.Person, actor, &actor
	u.notifier.SendSickNoteConvertedToVacationNotification(app)
	u.logger.Infow("Sick note converted to vacation", "sickNoteID", id, "applicationID", app.ID)
	return &app, nil
}

// NotifyEndOfSickPay sends the end of sick pay notice for one sick note.
func (u *SickNoteUsecase) NotifyEndOfSickPay(id uint) error {
	note, err := u.notes.GetByID(id)
	if err := lookup(err, "sick note", id); err != nil {
		return err
	}
	if note.Status != model.SickNoteActive {
		return fmt.Errorf("sick note %d in status %s: %w", id, note.Status, ErrInvalidState)
	}
	return u.notifyEndOfSickPay(note)
}

// NotifyEndingSickPay notifies about every active sick note whose sick pay
// ends within the configured number of days and that was not reported yet.
// It returns how many notes were reported.
func (u *SickNoteUsecase) NotifyEndingSickPay() (int, error) {
	settings, err := u.settings.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}
	now := u.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Sick pay covers MaximumSickPayDays days including the first one.
	lead := settings.MaximumSickPayDays - 1 - settings.DaysBeforeEndOfSickPay
	notes, err := u.notes.GetActiveStartedBefore(today.AddDate(0, 0, -lead))
	if err != nil {
		return 0, fmt.Errorf("list sick notes: %w", err)
	}

	sent := 0
	for i := range notes {
		note := &notes[i]
		lastPaidDay := note.StartDate.AddDate(0, 0, settings.MaximumSickPayDays-1)
		if note.EndOfSickPayNotified || note.EndDate.Before(lastPaidDay) {
			continue
		}
		if err := u.notifyEndOfSickPay(note); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (u *SickNoteUsecase) notifyEndOfSickPay(note *model.SickNote) error {
	u.notifier.SendEndOfSickPayNotification(*note)
	note.EndOfSickPayNotified = true
	if err := u.notes.Update(note); err != nil {
		return fmt.Errorf("update sick note %d: %w", note.ID, err)
	}
	return nil
}
