package handler

import (
	"time"

	"gorm.io/gorm"

	"leave-backend/internal/model"
)

type memPersons struct {
	byID map[uint]model.Person
}

func (m *memPersons) Create(p *model.Person) error {
	p.ID = uint(len(m.byID) + 1)
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
	out := make([]model.Person, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPersons) GetByNotification(model.Notification) ([]model.Person, error) {
	return nil, nil
}

// noDepartments puts everybody outside of any department.
type noDepartments struct{}

func (noDepartments) Create(*model.Department) error                              { return nil }
func (noDepartments) GetAll() ([]model.Department, error)                         { return nil, nil }
func (noDepartments) IsDepartmentHeadOf(model.Person, model.Person) (bool, error) { return false, nil }
func (noDepartments) IsSecondStageAuthorityOf(model.Person, model.Person) (bool, error) {
	return false, nil
}
func (noDepartments) IsInTwoStageDepartment(model.Person) (bool, error) { return false, nil }
func (noDepartments) GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(model.Person, time.Time, time.Time) ([]model.Application, error) {
	return nil, nil
}

type memApplications struct {
	byID     map[uint]model.Application
	comments []model.ApplicationComment
	persons  *memPersons
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
	for _, app := range m.byID {
		if app.Status == status {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *memApplications) Update(app *model.Application) error {
	m.byID[app.ID] = *app
	return nil
}

func (m *memApplications) CreateWithComment(app *model.Application, c *model.ApplicationComment) error {
	if err := m.Create(app); err != nil {
		return err
	}
	c.ApplicationID = app.ID
	return m.CreateComment(c)
}

func (m *memApplications) UpdateWithComment(app *model.Application, c *model.ApplicationComment) error {
	if err := m.Update(app); err != nil {
		return err
	}
	c.ApplicationID = app.ID
	return m.CreateComment(c)
}

func (m *memApplications) CreateComment(c *model.ApplicationComment) error {
	m.comments = append(m.comments, *c)
	return nil
}

func (m *memApplications) GetComments(id uint) ([]model.ApplicationComment, error) {
	var out []model.ApplicationComment
	for _, c := range m.comments {
		if c.ApplicationID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

// silent swallows every notification.
type silent struct{}

func (silent) SendNewApplicationNotification(model.Application, *model.ApplicationComment)          {}
func (silent) SendRemindBossNotification(model.Application)                                         {}
func (silent) SendTemporaryAllowedNotification(model.Application, *model.ApplicationComment)        {}
func (silent) SendAllowedNotification(model.Application, *model.ApplicationComment)                 {}
func (silent) SendRejectedNotification(model.Application, *model.ApplicationComment)                {}
func (silent) SendReferApplicationNotification(model.Application, model.Person, model.Person)       {}
func (silent) SendConfirmation(model.Application, *model.ApplicationComment)                        {}
func (silent) SendAppliedForLeaveByOfficeNotification(model.Application, *model.ApplicationComment) {}
func (silent) SendCancelledByOfficeNotification(model.Application, *model.ApplicationComment)       {}
func (silent) SendCancellationRequest(model.Application, *model.ApplicationComment)                 {}
func (silent) NotifyHolidayReplacement(model.Application)                                           {}
func (silent) SendUserCreationNotification(model.Person, string)                                    {}
