package usecase

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"leave-backend/internal/model"
)

type memPersons struct {
	byID map[uint]model.Person
}

func newMemPersons(people ...model.Person) *memPersons {
	m := &memPersons{byID: map[uint]model.Person{}}
	for _, p := range people {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memPersons) Create(p *model.Person) error {
	p.ID = uint(len(m.byID) + 100)
	m.byID[p.ID] = *p
	return nil
}

func (m *memPersons) FindByID(id uint) (*model.Person, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (m *memPersons) FindByLoginName(login string) (*model.Person, error) {
	for _, p := range m.byID {
		if p.LoginName == login {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memPersons) GetAll() ([]model.Person, error) {
	var out []model.Person
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPersons) GetByNotification(n model.Notification) ([]model.Person, error) {
	var out []model.Person
	for _, p := range m.byID {
		if p.HasNotification(n) {
			out = append(out, p)
		}
	}
	return out, nil
}

// memDepartments knows one department with the given members, heads and
// second stage authorities.
type memDepartments struct {
	members, heads, secondStage []uint
	twoStage                    bool
}

func (m *memDepartments) Create(*model.Department) error      { return nil }
func (m *memDepartments) GetAll() ([]model.Department, error) { return nil, nil }
func (m *memDepartments) IsInTwoStageDepartment(p model.Person) (bool, error) {
	return m.twoStage && has(m.members, p.ID), nil
}

func (m *memDepartments) IsDepartmentHeadOf(candidate, subject model.Person) (bool, error) {
	return candidate.HasRole(model.RoleDepartmentHead) && has(m.heads, candidate.ID) && has(m.members, subject.ID), nil
}

func (m *memDepartments) IsSecondStageAuthorityOf(candidate, subject model.Person) (bool, error) {
	return candidate.HasRole(model.RoleSecondStageAuthority) && has(m.secondStage, candidate.ID) && has(m.members, subject.ID), nil
}

func (m *memDepartments) GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(model.Person, time.Time, time.Time) ([]model.Application, error) {
	return nil, nil
}

func has(ids []uint, id uint) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

type memApplications struct {
	byID     map[uint]model.Application
	comments []model.ApplicationComment
	persons  *memPersons
	// commentErr makes every comment write fail.
	commentErr error
}

func newMemApplications(persons *memPersons) *memApplications {
	return &memApplications{byID: map[uint]model.Application{}, persons: persons}
}

func (m *memApplications) Create(app *model.Application) error {
	app.ID = uint(len(m.byID) + 1)
	m.byID[app.ID] = *app
	return nil
}

func (m *memApplications) GetByID(id uint) (*model.Application, error) {
	app, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p, err := m.persons.FindByID(app.PersonID); err == nil {
		app.Person = *p
	}
	if p, err := m.persons.FindByID(app.ApplierID); err == nil {
		app.Applier = *p
	}
	return &app, nil
}

func (m *memApplications) GetByPersonID(personID uint) ([]model.Application, error) {
	var out []model.Application
	for _, app := range m.byID {
		if app.PersonID == personID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *memApplications) GetByStatus(status model.ApplicationStatus) ([]model.Application, error) {
	var out []model.Application
	for id, app := range m.byID {
		if app.Status == status {
			full, _ := m.GetByID(id)
			out = append(out, *full)
		}
	}
	return out, nil
}

func (m *memApplications) Update(app *model.Application) error {
	m.byID[app.ID] = *app
	return nil
}

// CreateWithComment and UpdateWithComment write nothing when the comment
// cannot be stored, like the database transaction.
func (m *memApplications) CreateWithComment(app *model.Application, c *model.ApplicationComment) error {
	if m.commentErr != nil {
		return m.commentErr
	}
	if err := m.Create(app); err != nil {
		return err
	}
	c.ApplicationID = app.ID
	return m.CreateComment(c)
}

func (m *memApplications) UpdateWithComment(app *model.Application, c *model.ApplicationComment) error {
	if m.commentErr != nil {
		return m.commentErr
	}
	if err := m.Update(app); err != nil {
		return err
	}
	c.ApplicationID = app.ID
	return m.CreateComment(c)
}

func (m *memApplications) CreateComment(c *model.ApplicationComment) error {
	if m.commentErr != nil {
		return m.commentErr
	}
	c.ID = uint(len(m.comments) + 1)
	m.comments = append(m.comments, *c)
	return nil
}

func (m *memApplications) GetComments(applicationID uint) ([]model.ApplicationComment, error) {
	var out []model.ApplicationComment
	for _, c := range m.comments {
		if c.ApplicationID == applicationID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memSettings struct {
	settings model.Settings
	saved    int
}

func (m *memSettings) GetSettings() (*model.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *memSettings) Save(s *model.Settings) error {
	m.settings = *s
	m.saved++
	return nil
}

func (m *memSettings) GetCurrentMailSettings() (model.MailSettings, error) {
	return m.settings.Mail, nil
}

type memSickNotes struct {
	byID map[uint]model.SickNote
}

func (m *memSickNotes) Create(n *model.SickNote) error {
	n.ID = uint(len(m.byID) + 1)
	m.byID[n.ID] = *n
	return nil
}

func (m *memSickNotes) GetByID(id uint) (*model.SickNote, error) {
	n, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &n, nil
}

func (m *memSickNotes) Update(n *model.SickNote) error {
	m.byID[n.ID] = *n
	return nil
}

func (m *memSickNotes) GetActiveStartedBefore(day time.Time) ([]model.SickNote, error) {
	var out []model.SickNote
	for _, n := range m.byID {
		if n.Status == model.SickNoteActive && !n.StartDate.After(day) {
			out = append(out, n)
		}
	}
	return out, nil
}

type memOvertime struct {
	saved    []model.Overtime
	comments []model.OvertimeComment
}

func (m *memOvertime) Create(o *model.Overtime, c *model.OvertimeComment) error {
	o.ID = uint(len(m.saved) + 1)
	m.saved = append(m.saved, *o)
	if c != nil {
		c.OvertimeID = o.ID
		m.comments = append(m.comments, *c)
	}
	return nil
}

func (m *memOvertime) GetByPersonID(personID uint) ([]model.Overtime, error) {
	var out []model.Overtime
	for _, o := range m.saved {
		if o.PersonID == personID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memAccounts struct {
	accounts []model.Account
}

func (m *memAccounts) GetByYear(year int) ([]model.Account, error) {
	var out []model.Account
	for _, a := range m.accounts {
		if a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

// Save mirrors the unique index on person and year.
func (m *memAccounts) Save(a *model.Account) error {
	for i, existing := range m.accounts {
		if a.ID != 0 && existing.ID == a.ID {
			m.accounts[i] = *a
			return nil
		}
		if existing.PersonID == a.PersonID && existing.Year == a.Year {
			return errors.New("duplicate entry for key idx_account_year")
		}
	}
	a.ID = uint(len(m.accounts) + 1)
	m.accounts = append(m.accounts, *a)
	return nil
}

// recordingNotifier remembers which notifications were triggered, in order.
type recordingNotifier struct {
	events       []string
	applications []model.Application
	comments     []*model.ApplicationComment
	rawPassword  string
}

func (r *recordingNotifier) record(event string, app model.Application, c *model.ApplicationComment) {
	r.events = append(r.events, event)
	r.applications = append(r.applications, app)
	r.comments = append(r.comments, c)
}

func (r *recordingNotifier) SendNewApplicationNotification(a model.Application, c *model.ApplicationComment) {
	r.record("new", a, c)
}
func (r *recordingNotifier) SendRemindBossNotification(a model.Application) {
	r.record("remind", a, nil)
}
func (r *recordingNotifier) SendTemporaryAllowedNotification(a model.Application, c *model.ApplicationComment) {
	r.record("temporaryAllowed", a, c)
}
func (r *recordingNotifier) SendAllowedNotification(a model.Application, c *model.ApplicationComment) {
	r.record("allowed", a, c)
}
func (r *recordingNotifier) SendRejectedNotification(a model.Application, c *model.ApplicationComment) {
	r.record("rejected", a, c)
}
func (r *recordingNotifier) SendReferApplicationNotification(a model.Application, _, _ model.Person) {
	r.record("refer", a, nil)
}
func (r *recordingNotifier) SendConfirmation(a model.Application, c *model.ApplicationComment) {
	r.record("confirm", a, c)
}
func (r *recordingNotifier) SendAppliedForLeaveByOfficeNotification(a model.Application, c *model.ApplicationComment) {
	r.record("appliedByOffice", a, c)
}
func (r *recordingNotifier) SendCancelledByOfficeNotification(a model.Application, c *model.ApplicationComment) {
	r.record("cancelledByOffice", a, c)
}
func (r *recordingNotifier) SendCancellationRequest(a model.Application, c *model.ApplicationComment) {
	r.record("cancellationRequest", a, c)
}
func (r *recordingNotifier) NotifyHolidayReplacement(a model.Application) {
	r.record("holidayReplacement", a, nil)
}
func (r *recordingNotifier) SendSickNoteConvertedToVacationNotification(a model.Application) {
	r.record("sickNoteConverted", a, nil)
}
func (r *recordingNotifier) SendEndOfSickPayNotification(model.SickNote) {
	r.events = append(r.events, "endOfSickPay")
}
func (r *recordingNotifier) SendUserCreationNotification(_ model.Person, rawPassword string) {
	r.events = append(r.events, "userCreation")
	r.rawPassword = rawPassword
}
func (r *recordingNotifier) SendOvertimeNotification(model.Overtime, *model.OvertimeComment) {
	r.events = append(r.events, "overtime")
}
func (r *recordingNotifier) SendSuccessfullyUpdatedSettingsNotification(model.Settings) {
	r.events = append(r.events, "settingsUpdated")
}
func (r *recordingNotifier) SendSuccessfullyUpdatedAccountsNotification([]model.Account) {
	r.events = append(r.events, "accountsUpdated")
}

func withRoles(id uint, login string, roles ...model.Role) model.Person {
	p := model.Person{LoginName: login, FirstName: login, Email: login + "@example.org"}
	p.ID = id
	for _, r := range roles {
		p.Permissions = append(p.Permissions, model.PersonPermission{Role: r})
	}
	return p
}

func ptr[T any](v T) *T { return &v }
