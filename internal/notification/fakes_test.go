package notification

import (
	"errors"
	"sync"
	"time"

	"leave-backend/internal/model"
)

type fakePersons struct {
	byNotification map[model.Notification][]model.Person
	err            error
}

func (f *fakePersons) GetByNotification(n model.Notification) ([]model.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byNotification[n], nil
}

// fakeDepartments maps a subject's ID to the IDs of their department heads
// and second stage authorities.
type fakeDepartments struct {
	heads       map[uint][]uint
	secondStage map[uint][]uint
	vacations   []model.Application
	err         error
}

func (f *fakeDepartments) IsDepartmentHeadOf(candidate, subject model.Person) (bool, error) {
	return contains(f.heads[subject.ID], candidate.ID), f.err
}

func (f *fakeDepartments) IsSecondStageAuthorityOf(candidate, subject model.Person) (bool, error) {
	return contains(f.secondStage[subject.ID], candidate.ID), f.err
}

func (f *fakeDepartments) GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(model.Person, time.Time, time.Time) ([]model.Application, error) {
	return f.vacations, f.err
}

func contains(ids []uint, id uint) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

type fakeSettings struct {
	settings model.MailSettings
	err      error
	calls    int
}

func (f *fakeSettings) GetCurrentMailSettings() (model.MailSettings, error) {
	f.calls++
	return f.settings, f.err
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeTransport) Send(_ model.MailSettings, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type mapMessages map[string]string

func (m mapMessages) Message(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

var testMessages = mapMessages{
	"FULL":                               "ganztägig",
	"MORNING":                            "vormittags",
	"NOON":                               "nachmittags",
	SubjectApplicationAppliedBoss:        "Neuer Urlaubsantrag",
	SubjectApplicationAllowedUser:        "Dein Urlaubsantrag wurde bewilligt",
	SubjectApplicationAppliedUser:        "Antragsstellung",
	SubjectSettingsUpdated:               "Einstellungen aktualisiert",
	SubjectApplicationAllowedOffice:      "Neuer bewilligter Antrag",
	SubjectApplicationRejected:           "Dein Urlaubsantrag wurde abgelehnt",
	SubjectApplicationHolidayReplacement: "Vertretung",
}

var errLookup = errors.New("lookup failed")

func person(id uint, login, first, last, email string) model.Person {
	p := model.Person{LoginName: login, FirstName: first, LastName: last, Email: email}
	p.ID = id
	return p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleApplication() model.Application {
	app := model.Application{
		Person:          person(1, "lieschen", "Lieschen", "Müller", "lieschen@example.org"),
		VacationType:    model.VacationTypeHoliday,
		DayLength:       model.DayLengthFull,
		StartDate:       day(2015, time.November, 5),
		EndDate:         day(2015, time.November, 6),
		ApplicationDate: day(2015, time.October, 20),
		Status:          model.StatusWaiting,
	}
	app.ID = 1234
	app.PersonID = app.Person.ID
	app.Applier = app.Person
	app.ApplierID = app.Person.ID
	return app
}
