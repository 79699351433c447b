package usecase

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
	"leave-backend/internal/validator"
)

// ApplicationNotifier is the part of the notification service the
// application lifecycle triggers.
type ApplicationNotifier interface {
	SendNewApplicationNotification(application model.Application, comment *model.ApplicationComment)
	SendRemindBossNotification(application model.Application)
	SendTemporaryAllowedNotification(application model.Application, comment *model.ApplicationComment)
	SendAllowedNotification(application model.Application, comment *model.ApplicationComment)
	SendRejectedNotification(application model.Application, comment *model.ApplicationComment)
	SendReferApplicationNotification(application model.Application, recipient, sender model.Person)
	SendConfirmation(application model.Application, comment *model.ApplicationComment)
	SendAppliedForLeaveByOfficeNotification(application model.Application, comment *model.ApplicationComment)
	SendCancelledByOfficeNotification(application model.Application, comment *model.ApplicationComment)
	SendCancellationRequest(application model.Application, comment *model.ApplicationComment)
	NotifyHolidayReplacement(application model.Application)
}

const FieldVacationType = "vacationType"

type ApplicationUsecase struct {
	apps        repository.ApplicationRepository
	persons     repository.PersonRepository
	departments repository.DepartmentRepository
	validator   *validator.ApplicationValidator
	notifier    ApplicationNotifier
	now         func() time.Time
	logger      *zap.SugaredLogger
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	persons repository.PersonRepository,
	departments repository.DepartmentRepository,
	v *validator.ApplicationValidator,
	notifier ApplicationNotifier,
	now func() time.Time,
	logger *zap.SugaredLogger,
) *ApplicationUsecase {
	if now == nil {
		now = time.Now
	}
	return &ApplicationUsecase{
		apps:        apps,
		persons:     persons,
		departments: departments,
		validator:   v,
		notifier:    notifier,
		now:         now,
		logger:      logger.Named("application"),
	}
}

// Apply validates and stores a new application. errs carries what the
// request binder already rejected and may be nil.
//
// A period in the past is only accepted with force, and never when it lies
// more than a year back; the returned warning tells the caller which case
// applies.
func (u *ApplicationUsecase) Apply(form model.ApplicationForm, errs *validator.Errors, applier model.Person, force bool) (*model.Application, *validator.PastWarning, error) {
	if errs == nil {
		errs = &validator.Errors{}
	}
	if !form.VacationType.Valid() {
		errs.RejectValue(FieldVacationType, validator.ErrTypeMismatch)
	}
	u.validator.Validate(form, errs)
	if errs.HasErrors() {
		return nil, nil, errs
	}
	if warning := u.validator.ValidatePast(form); warning != nil && (!warning.Force || !force) {
		return nil, warning, ErrPastPeriod
	}

	subject := applier
	if form.PersonID != 0 && form.PersonID != applier.ID {
		if !applier.HasRole(model.RoleOffice) {
			return nil, nil, fmt.Errorf("apply for person %d: %w", form.PersonID, ErrForbidden)
		}
		p, err := u.persons.FindByID(form.PersonID)
		if err := lookup(err, "person", form.PersonID); err != nil {
			return nil, nil, err
		}
		subject = *p
	}

	var replacement *model.Person
	if form.HolidayReplacementID != nil {
		p, err := u.persons.FindByID(*form.HolidayReplacementID)
		if err := lookup(err, "holiday replacement", *form.HolidayReplacementID); err != nil {
			return nil, nil, err
		}
		replacement = p
	}

	twoStage, err := u.departments.IsInTwoStageDepartment(subject)
	if err != nil {
		return nil, nil, fmt.Errorf("check two stage approval: %w", err)
	}

	app := model.Application{
		PersonID:             subject.ID,
		ApplierID:            applier.ID,
		HolidayReplacementID: form.HolidayReplacementID,
		VacationType:         form.VacationType,
		DayLength:            form.DayLength,
		Reason:               form.Reason,
		Address:              form.Address,
		ApplicationDate:      u.today(),
		Status:               model.StatusWaiting,
		TwoStageApproval:     twoStage,
	}
	if form.DayLength == model.DayLengthFull {
		app.StartDate, app.EndDate = *form.StartDate, *form.EndDate
	} else {
		app.StartDate, app.EndDate = *form.StartDateHalf, *form.StartDateHalf
	}
	applied := model.ApplicationComment{PersonID: applier.ID, Action: model.ActionApplied, Text: form.Comment}
	if err := u.apps.CreateWithComment(&app, &applied); err != nil {
		return nil, nil, fmt.Errorf("create application: %w", err)
	}
	app.Person, app.Applier, app.HolidayReplacement = subject, applier, replacement
	comment := forMail(applied, applier)

	if applier.ID == subject.ID {
		u.notifier.SendConfirmation(app, comment)
	} else {
		u.notifier.SendAppliedForLeaveByOfficeNotification(app, comment)
	}
	u.notifier.SendNewApplicationNotification(app, comment)
	if replacement != nil {
		u.notifier.NotifyHolidayReplacement(app)
	}

	u.logger.Infow("Application created", "applicationID", app.ID, "personID", subject.ID, "applierID", applier.ID)
	return &app, nil, nil
}

// Allow approves an application. A department head of a department with two
// stage approval only allows temporarily; the second stage authority or a
// boss then allows finally.
func (u *ApplicationUsecase) Allow(id uint, actor model.Person, text string) (*model.Application, error) {
	if err := u.checkComment(text, false); err != nil {
		return nil, err
	}
	app, err := u.get(id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.StatusWaiting && app.Status != model.StatusTemporaryAllowed {
		return nil, fmt.Errorf("allow application %d in status %s: %w", id, app.Status, ErrInvalidState)
	}

	auth, err := u.authority(actor, app.Person)
	if err != nil {
		return nil, err
	}
	if !auth.any() {
		return nil, fmt.Errorf("allow application %d: %w", id, ErrForbidden)
	}

	if app.TwoStageApproval && !auth.boss && !auth.secondStage {
		if app.Status == model.StatusTemporaryAllowed {
			return nil, fmt.Errorf("application %d awaits the second stage: %w", id, ErrForbidden)
		}
		app.Status = model.StatusTemporaryAllowed
		comment, err := u.transition(app, actor, model.ActionTemporaryAllowed, text)
		if err != nil {
			return nil, err
		}
		u.notifier.SendTemporaryAllowedNotification(*app, comment)
		u.logger.Infow("Application temporarily allowed", "applicationID", id, "actorID", actor.ID)
		return app, nil
	}

	app.Status = model.StatusAllowed
	app.BossID, app.Boss = &actor.ID, &actor
	comment, err := u.transition(app, actor, model.ActionAllowed, text)
	if err != nil {
		return nil, err
	}
	u.notifier.SendAllowedNotification(*app, comment)
	u.logger.Infow("Application allowed", "applicationID", id, "actorID", actor.ID)
	return app, nil
}

// Reject needs a comment explaining the decision.
func (u *ApplicationUsecase) Reject(id uint, actor model.Person, text string) (*model.Application, error) {
	if err := u.checkComment(text, true); err != nil {
		return nil, err
	}
	app, err := u.get(id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.StatusWaiting && app.Status != model.StatusTemporaryAllowed {
		return nil, fmt.Errorf("reject application %d in status %s: %w", id, app.Status, ErrInvalidState)
	}
	auth, err := u.authority(actor, app.Person)
	if err != nil {
		return nil, err
	}
	if !auth.any() {
		return nil, fmt.Errorf("reject application %d: %w", id, ErrForbidden)
	}

	app.Status = model.StatusRejected
	app.BossID, app.Boss = &actor.ID, &actor
	comment, err := u.transition(app, actor, model.ActionRejected, text)
	if err != nil {
		return nil, err
	}
	u.notifier.SendRejectedNotification(*app, comment)
	u.logger.Infow("Application rejected", "applicationID", id, "actorID", actor.ID)
	return app, nil
}

// Cancel withdraws an application.
//
// The office cancels directly and the applicant is told about it. The
// applicant revokes an undecided application silently; for an allowed one
// only a cancellation request is sent to the office and the status stays.
func (u *ApplicationUsecase) Cancel(id uint, actor model.Person, text string) (*model.Application, error) {
	app, err := u.get(id)
	if err != nil {
		return nil, err
	}
	undecided := app.Status == model.StatusWaiting || app.Status == model.StatusTemporaryAllowed

	switch {
	case actor.HasRole(model.RoleOffice):
		if err := u.checkComment(text, false); err != nil {
			return nil, err
		}
		switch {
		case undecided:
			app.Status = model.StatusRevoked
		case app.Status == model.StatusAllowed:
			app.Status = model.StatusCancelled
		default:
			return nil, fmt.Errorf("cancel application %d in status %s: %w", id, app.Status, ErrInvalidState)
		}
		app.CancellerID, app.Canceller = &actor.ID, &actor
		comment, err := u.transition(app, actor, model.CommentAction(app.Status), text)
		if err != nil {
			return nil, err
		}
		if actor.ID != app.PersonID {
			u.notifier.SendCancelledByOfficeNotification(*app, comment)
		}

	case actor.ID == app.PersonID && undecided:
		if err := u.checkComment(text, false); err != nil {
			return nil, err
		}
		app.Status = model.StatusRevoked
		app.CancellerID, app.Canceller = &actor.ID, &actor
		if _, err := u.transition(app, actor, model.ActionRevoked, text); err != nil {
			return nil, err
		}

	case actor.ID == app.PersonID && app.Status == model.StatusAllowed:
		if err := u.checkComment(text, true); err != nil {
			return nil, err
		}
		comment, err := u.comment(*app, actor, model.ActionCancelRequested, text)
		if err != nil {
			return nil, err
		}
		u.notifier.SendCancellationRequest(*app, comment)

	case actor.ID == app.PersonID:
		return nil, fmt.Errorf("cancel application %d in status %s: %w", id, app.Status, ErrInvalidState)

	default:
		return nil, fmt.Errorf("cancel application %d: %w", id, ErrForbidden)
	}

	u.logger.Infow("Application cancelled", "applicationID", id, "actorID", actor.ID, "status", app.Status)
	return app, nil
}

// Remind asks the deciders once per day to process a waiting application.
// Applications made today cannot be reminded about yet.
func (u *ApplicationUsecase) Remind(id uint, actor model.Person) error {
	app, err := u.get(id)
	if err != nil {
		return err
	}
	if actor.ID != app.PersonID && !actor.HasRole(model.RoleOffice) {
		return fmt.Errorf("remind application %d: %w", id, ErrForbidden)
	}
	if app.Status != model.StatusWaiting {
		return fmt.Errorf("remind application %d in status %s: %w", id, app.Status, ErrInvalidState)
	}

	today := u.today()
	if !app.ApplicationDate.Before(today) {
		return fmt.Errorf("application %d was made today: %w", id, ErrInvalidState)
	}
	if app.RemindDate != nil && !app.RemindDate.Before(today) {
		return fmt.Errorf("reminder for application %d already sent today: %w", id, ErrInvalidState)
	}

	app.RemindDate = &today
	if err := u.apps.Update(app); err != nil {
		return fmt.Errorf("update application %d: %w", id, err)
	}
	u.notifier.SendRemindBossNotification(*app)
	return nil
}

// Refer hands the decision about an application to a colleague.
func (u *ApplicationUsecase) Refer(id uint, recipientLogin string, sender model.Person) error {
	app, err := u.get(id)
	if err != nil {
		return err
	}
	auth, err := u.authority(sender, app.Person)
	if err != nil {
		return err
	}
	if !auth.any() {
		return fmt.Errorf("refer application %d: %w", id, ErrForbidden)
	}
	recipient, err := u.persons.FindByLoginName(recipientLogin)
	if err := lookup(err, "person", recipientLogin); err != nil {
		return err
	}

	if _, err := u.comment(*app, sender, model.ActionReferred, ""); err != nil {
		return err
	}
	u.notifier.SendReferApplicationNotification(*app, *recipient, sender)
	return nil
}

// Get returns the application if actor may see it.
func (u *ApplicationUsecase) Get(id uint, actor model.Person) (*model.Application, error) {
	app, err := u.get(id)
	if err != nil {
		return nil, err
	}
	if actor.ID == app.PersonID || actor.HasRole(model.RoleOffice) {
		return app, nil
	}
	auth, err := u.authority(actor, app.Person)
	if err != nil {
		return nil, err
	}
	if !auth.any() {
		return nil, fmt.Errorf("application %d: %w", id, ErrForbidden)
	}
	return app, nil
}

func (u *ApplicationUsecase) ListOwn(actor model.Person) ([]model.Application, error) {
	return u.apps.GetByPersonID(actor.ID)
}

// ListWaiting returns the applications actor has to decide on.
func (u *ApplicationUsecase) ListWaiting(actor model.Person) ([]model.Application, error) {
	var out []model.Application
	for _, status := range []model.ApplicationStatus{model.StatusWaiting, model.StatusTemporaryAllowed} {
		list, err := u.apps.GetByStatus(status)
		if err != nil {
			return nil, fmt.Errorf("list %s applications: %w", status, err)
		}
		for _, app := range list {
			if actor.HasRole(model.RoleOffice) {
				out = append(out, app)
				continue
			}
			auth, err := u.authority(actor, app.Person)
			if err != nil {
				return nil, err
			}
			if auth.any() {
				out = append(out, app)
			}
		}
	}
	return out, nil
}

func (u *ApplicationUsecase) Comments(id uint, actor model.Person) ([]model.ApplicationComment, error) {
	if _, err := u.Get(id, actor); err != nil {
		return nil, err
	}
	return u.apps.GetComments(id)
}

type authority struct {
	boss, head, secondStage bool
}

func (a authority) any() bool { return a.boss || a.head || a.secondStage }

// authority tells in which capacity actor may decide about subject's
// applications. Nobody decides about their own application except a boss.
func (u *ApplicationUsecase) authority(actor, subject model.Person) (authority, error) {
	var a authority
	a.boss = actor.HasRole(model.RoleBoss)
	if actor.ID == subject.ID {
		return a, nil
	}
	var err error
	if a.head, err = u.departments.IsDepartmentHeadOf(actor, subject); err != nil {
		return a, fmt.Errorf("check department head: %w", err)
	}
	if a.secondStage, err = u.departments.IsSecondStageAuthorityOf(actor, subject); err != nil {
		return a, fmt.Errorf("check second stage authority: %w", err)
	}
	return a, nil
}

func (u *ApplicationUsecase) get(id uint) (*model.Application, error) {
	app, err := u.apps.GetByID(id)
	if err := lookup(err, "application", id); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *ApplicationUsecase) checkComment(text string, mandatory bool) error {
	errs := &validator.Errors{}
	u.validator.ValidateComment(text, mandatory, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// transition saves the changed application together with the comment
// recording the action. The returned comment is nil when there is no text to
// show in mails.
func (u *ApplicationUsecase) transition(app *model.Application, author model.Person, action model.CommentAction, text string) (*model.ApplicationComment, error) {
	c := model.ApplicationComment{
		ApplicationID: app.ID,
		PersonID:      author.ID,
		Action:        action,
		Text:          text,
	}
	if err := u.apps.UpdateWithComment(app, &c); err != nil {
		return nil, fmt.Errorf("update application %d: %w", app.ID, err)
	}
	return forMail(c, author), nil
}

// comment stores an action that leaves the application unchanged.
func (u *ApplicationUsecase) comment(app model.Application, author model.Person, action model.CommentAction, text string) (*model.ApplicationComment, error) {
	c := model.ApplicationComment{
		ApplicationID: app.ID,
		PersonID:      author.ID,
		Action:        action,
		Text:          text,
	}
	if err := u.apps.CreateComment(&c); err != nil {
		return nil, fmt.Errorf("create comment for application %d: %w", app.ID, err)
	}
	return forMail(c, author), nil
}

func forMail(c model.ApplicationComment, author model.Person) *model.ApplicationComment {
	if strings.TrimSpace(c.Text) == "" {
		return nil
	}
	c.Person = author
	return &c
}

func (u *ApplicationUsecase) today() time.Time {
	now := u.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
