package notification

import (
	"time"

	"go.uber.org/zap"

	"leave-backend/internal/model"
)

// Subject keys looked up in the messages file.
const (
	SubjectApplicationAppliedBoss            = "subject.application.applied.boss"
	SubjectApplicationRemind                 = "subject.application.remind"
	SubjectApplicationTemporaryAllowedUser   = "subject.application.temporaryAllowed.user"
	SubjectApplicationTemporaryAllowedSecond = "subject.application.temporaryAllowed.secondStage"
	SubjectApplicationAllowedUser            = "subject.application.allowed.user"
	SubjectApplicationAllowedOffice          = "subject.application.allowed.office"
	SubjectApplicationRejected               = "subject.application.rejected"
	SubjectApplicationRefer                  = "subject.application.refer"
	SubjectApplicationAppliedUser            = "subject.application.applied.user"
	SubjectApplicationAppliedByOffice        = "subject.application.appliedByOffice"
	SubjectApplicationCancelled              = "subject.application.cancelled.user"
	SubjectApplicationCancellationRequest    = "subject.application.cancellationRequest"
	SubjectApplicationHolidayReplacement     = "subject.application.holidayReplacement"
	SubjectErrorSign                         = "subject.error.sign"
	SubjectErrorCalendarSync                 = "subject.error.calendar.sync"
	SubjectErrorCalendarUpdate               = "subject.error.calendar.update"
	SubjectErrorCalendarDelete               = "subject.error.calendar.delete"
	SubjectAccountUpdated                    = "subject.account.updatedRemainingDays"
	SubjectSettingsUpdated                   = "subject.settings.updated"
	SubjectSickNoteConverted                 = "subject.sicknote.converted"
	SubjectSickNoteEndOfSickPay              = "subject.sicknote.endOfSickPay"
	SubjectUserCreation                      = "subject.userCreation"
	SubjectOvertimeOffice                    = "subject.overtime.created"
)

// Mailer hands rendered bodies to the mail server. Dispatcher is the
// production implementation.
type Mailer interface {
	SendEmail(recipients []model.Person, subjectKey, body string) []DispatchResult
	SendTechnicalNotification(subjectKey, body string) []DispatchResult
}

// Service turns lifecycle events into mails. None of its methods report
// errors: a notification that cannot be resolved, rendered or delivered is
// logged and dropped, the triggering transition stands.
type Service struct {
	resolver    *Resolver
	departments DepartmentLookup
	builder     *ContextBuilder
	renderer    Renderer
	mailer      Mailer
	now         func() time.Time
	logger      *zap.SugaredLogger
}

func NewService(resolver *Resolver, departments DepartmentLookup, builder *ContextBuilder, renderer Renderer, mailer Mailer, now func() time.Time, logger *zap.SugaredLogger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		resolver:    resolver,
		departments: departments,
		builder:     builder,
		renderer:    renderer,
		mailer:      mailer,
		now:         now,
		logger:      logger.Named("notification"),
	}
}

// SendNewApplicationNotification informs bosses and the responsible
// department heads, listing overlapping leave in the applicant's departments.
func (s *Service) SendNewApplicationNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	m["departmentVacations"] = s.departmentVacations(application)
	s.notify(AudienceBossesAndDepartmentHeads, application, TemplateNewApplications, SubjectApplicationAppliedBoss, m)
}

func (s *Service) SendRemindBossNotification(application model.Application) {
	m := s.builder.ForApplication(application, nil)
	s.notify(AudienceBossesAndDepartmentHeads, application, TemplateRemind, SubjectApplicationRemind, m)
}

// SendTemporaryAllowedNotification goes to the applicant and to the second
// stage authorities that still have to decide.
func (s *Service) SendTemporaryAllowedNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateTemporaryAllowedUser, SubjectApplicationTemporaryAllowedUser, m)

	m = s.builder.ForApplication(application, comment)
	m["departmentVacations"] = s.departmentVacations(application)
	s.notify(AudienceSecondStageAuthorities, application, TemplateTemporaryAllowedSecondStage, SubjectApplicationTemporaryAllowedSecond, m)
}

func (s *Service) SendAllowedNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateAllowedUser, SubjectApplicationAllowedUser, m)
	s.notify(AudienceOffice, application, TemplateAllowedOffice, SubjectApplicationAllowedOffice, m)
}

func (s *Service) SendRejectedNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateRejected, SubjectApplicationRejected, m)
}

// SendReferApplicationNotification asks recipient to look at an application
// on behalf of sender.
func (s *Service) SendReferApplicationNotification(application model.Application, recipient, sender model.Person) {
	m := Model{
		"application": application,
		"recipient":   recipient,
		"sender":      sender,
		"period":      application.Period(),
		"link":        s.builder.ApplicationLink(application.ID),
	}
	s.sendTo([]model.Person{recipient}, TemplateRefer, SubjectApplicationRefer, m)
}

func (s *Service) SendConfirmation(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateConfirm, SubjectApplicationAppliedUser, m)
}

func (s *Service) SendAppliedForLeaveByOfficeNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateNewApplicationByOffice, SubjectApplicationAppliedByOffice, m)
}

func (s *Service) SendCancelledByOfficeNotification(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceApplicant, application, TemplateCancelledByOffice, SubjectApplicationCancelled, m)
}

// SendCancellationRequest asks the office to cancel an already allowed
// application.
func (s *Service) SendCancellationRequest(application model.Application, comment *model.ApplicationComment) {
	m := s.builder.ForApplication(application, comment)
	s.notify(AudienceOffice, application, TemplateApplicationCancellationRequest, SubjectApplicationCancellationRequest, m)
}

// NotifyHolidayReplacement does nothing for applications without a
// replacement.
func (s *Service) NotifyHolidayReplacement(application model.Application) {
	m := Model{
		"application": application,
		"dayLength":   s.builder.DayLength(application.DayLength),
		"period":      application.Period(),
	}
	s.notify(AudienceHolidayReplacement, application, TemplateNotifyHolidayReplacement, SubjectApplicationHolidayReplacement, m)
}

func (s *Service) SendSickNoteConvertedToVacationNotification(application model.Application) {
	m := Model{
		"application":  application,
		"vacationType": application.VacationType.DisplayName(),
		"period":       application.Period(),
		"link":         s.builder.ApplicationLink(application.ID),
	}
	s.notify(AudienceApplicant, application, TemplateSickNoteConverted, SubjectSickNoteConverted, m)
}

// SendEndOfSickPayNotification goes to the sick person and, separately, to
// the office.
func (s *Service) SendEndOfSickPayNotification(sickNote model.SickNote) {
	m := Model{"sickNote": sickNote}
	s.sendTo([]model.Person{sickNote.Person}, TemplateSickNoteEndOfSickPay, SubjectSickNoteEndOfSickPay, m)

	office, err := s.resolver.Office()
	if err != nil {
		s.logger.Errorw("Could not resolve office", "sickNoteID", sickNote.ID, "error", err)
		return
	}
	s.sendTo(office, TemplateSickNoteEndOfSickPay, SubjectSickNoteEndOfSickPay, m)
}

func (s *Service) SendUserCreationNotification(person model.Person, rawPassword string) {
	m := Model{
		"person":         person,
		"rawPassword":    rawPassword,
		"applicationUrl": s.builder.ApplicationURL(),
	}
	s.sendTo([]model.Person{person}, TemplateUserCreation, SubjectUserCreation, m)
}

func (s *Service) SendOvertimeNotification(overtime model.Overtime, comment *model.OvertimeComment) {
	m := Model{
		"overtime": overtime,
		"link":     s.builder.OvertimeLink(overtime.ID),
	}
	if comment != nil {
		m["comment"] = *comment
	}

	recipients, err := s.resolver.OvertimeOffice()
	if err != nil {
		s.logger.Errorw("Could not resolve overtime office", "overtimeID", overtime.ID, "error", err)
		return
	}
	s.sendTo(recipients, TemplateOvertimeOffice, SubjectOvertimeOffice, m)
}

// SendSuccessfullyUpdatedAccountsNotification reports the yearly remaining
// vacation calculation to the office and the administrator.
func (s *Service) SendSuccessfullyUpdatedAccountsNotification(accounts []model.Account) {
	m := Model{
		"accounts": accounts,
		"year":     s.now().Year(),
	}
	office, err := s.resolver.Office()
	if err != nil {
		s.logger.Errorw("Could not resolve office", "error", err)
	} else {
		s.sendTo(office, TemplateUpdatedAccounts, SubjectAccountUpdated, m)
	}
	s.sendTechnical(TemplateUpdatedAccounts, SubjectAccountUpdated, m)
}

func (s *Service) SendSuccessfullyUpdatedSettingsNotification(settings model.Settings) {
	s.sendTechnical(TemplateUpdatedSettings, SubjectSettingsUpdated, Model{"settings": settings})
}

func (s *Service) SendSignErrorNotification(applicationID uint, exception string) {
	m := Model{"applicationId": applicationID, "exception": exception}
	s.sendTechnical(TemplateErrorSignApplication, SubjectErrorSign, m)
}

func (s *Service) SendCalendarSyncErrorNotification(calendar string, absence model.Absence, exception string) {
	m := Model{"calendar": calendar, "absence": absence, "exception": exception}
	s.sendTechnical(TemplateErrorCalendarSync, SubjectErrorCalendarSync, m)
}

func (s *Service) SendCalendarUpdateErrorNotification(calendar string, absence model.Absence, eventID, exception string) {
	m := Model{"calendar": calendar, "absence": absence, "eventId": eventID, "exception": exception}
	s.sendTechnical(TemplateErrorCalendarUpdate, SubjectErrorCalendarUpdate, m)
}

func (s *Service) SendCalendarDeleteErrorNotification(calendar, eventID, exception string) {
	m := Model{"calendar": calendar, "eventId": eventID, "exception": exception}
	s.sendTechnical(TemplateErrorCalendarDelete, SubjectErrorCalendarDelete, m)
}

func (s *Service) departmentVacations(application model.Application) []model.Application {
	apps, err := s.departments.GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(application.Person, application.StartDate, application.EndDate)
	if err != nil {
		s.logger.Warnw("Could not load department vacations", "applicationID", application.ID, "error", err)
		return nil
	}
	return apps
}

func (s *Service) notify(audience Audience, application model.Application, name TemplateName, subjectKey string, m Model) {
	recipients, err := s.resolver.Resolve(audience, application)
	if err != nil {
		s.logger.Errorw("Could not resolve recipients", "audience", audience.String(), "applicationID", application.ID, "error", err)
		return
	}
	s.sendTo(recipients, name, subjectKey, m)
}

func (s *Service) sendTo(recipients []model.Person, name TemplateName, subjectKey string, m Model) {
	if len(recipients) == 0 {
		s.logger.Debugw("Nobody to notify", "template", name)
		return
	}
	body, ok := s.render(name, m)
	if !ok {
		return
	}
	s.mailer.SendEmail(recipients, subjectKey, body)
}

func (s *Service) sendTechnical(name TemplateName, subjectKey string, m Model) {
	body, ok := s.render(name, m)
	if !ok {
		return
	}
	s.mailer.SendTechnicalNotification(subjectKey, body)
}

func (s *Service) render(name TemplateName, m Model) (string, bool) {
	body, err := s.renderer.Render(name, m)
	if err != nil {
		s.logger.Errorw("Could not render mail template", "template", name, "error", err)
		return "", false
	}
	return body, true
}
