//go:build integration

package repository_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"leave-backend/internal/database"
	"leave-backend/internal/logger"
	"leave-backend/internal/model"
	"leave-backend/internal/repository"
	"leave-backend/internal/testutil/containers"
)

type MySQLRepositorySuite struct {
	suite.Suite
	mysql *containers.MySQLContainer

	persons     repository.PersonRepository
	departments repository.DepartmentRepository
	apps        repository.ApplicationRepository
	settings    repository.SettingsRepository
	sickNotes   repository.SickNoteRepository
	overtime    repository.OvertimeRepository
	accounts    repository.AccountRepository
}

func TestMySQLRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MySQLRepositorySuite))
}

func (s *MySQLRepositorySuite) SetupSuite() {
	s.mysql = containers.NewMySQLContainer(s.T())
	db := s.mysql.DB
	s.persons = repository.NewPersonRepository(db)
	s.departments = repository.NewDepartmentRepository(db)
	s.apps = repository.NewApplicationRepository(db)
	s.settings = repository.NewSettingsRepository(db, model.Settings{Mail: model.MailSettings{Host: "default.example.org", Port: 25}})
	s.sickNotes = repository.NewSickNoteRepository(db)
	s.overtime = repository.NewOvertimeRepository(db)
	s.accounts = repository.NewAccountRepository(db)
}

func (s *MySQLRepositorySuite) SetupTest() {
	s.Require().NoError(s.mysql.TruncateTables(containers.Tables...))
	err := database.SeedAll(s.mysql.DB, database.SeedOptions{
		Password: "secret123",
		Mail:     model.MailSettings{Host: "seeded.example.org", Port: 2525, From: "urlaub@example.org"},
	}, logger.NewTest())
	s.Require().NoError(err)
}

func (s *MySQLRepositorySuite) person(login string) model.Person {
	p, err := s.persons.FindByLoginName(login)
	s.Require().NoError(err)
	return *p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *MySQLRepositorySuite) application(owner model.Person, status model.ApplicationStatus, start, end time.Time) model.Application {
	app := model.Application{
		PersonID:        owner.ID,
		ApplierID:       owner.ID,
		VacationType:    model.VacationTypeHoliday,
		DayLength:       model.DayLengthFull,
		StartDate:       start,
		EndDate:         end,
		ApplicationDate: day(2015, time.October, 20),
		Status:          status,
	}
	s.Require().NoError(s.apps.Create(&app))
	return app
}

func (s *MySQLRepositorySuite) TestSeedIsIdempotent() {
	err := database.SeedAll(s.mysql.DB, database.SeedOptions{Password: "other"}, logger.NewTest())
	s.Require().NoError(err)

	all, err := s.persons.GetAll()
	s.Require().NoError(err)
	s.Len(all, 6)
}

func (s *MySQLRepositorySuite) TestFindByLoginNamePreloadsPermissions() {
	boss := s.person("boss")
	s.True(boss.HasRole(model.RoleBoss))
	s.True(boss.HasNotification(model.NotificationBoss))

	_, err := s.persons.FindByLoginName("nobody")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *MySQLRepositorySuite) TestGetByNotification() {
	heads, err := s.persons.GetByNotification(model.NotificationDepartmentHead)
	s.Require().NoError(err)
	s.Require().Len(heads, 1)
	s.Equal("head", heads[0].LoginName)

	users, err := s.persons.GetByNotification(model.NotificationUser)
	s.Require().NoError(err)
	s.Len(users, 6)
	for i := 1; i < len(users); i++ {
		s.Less(users[i-1].ID, users[i].ID)
	}
}

func (s *MySQLRepositorySuite) TestDepartmentResponsibilities() {
	head, second, lieschen, boss := s.person("head"), s.person("secondstage"), s.person("lieschen"), s.person("boss")

	ok, err := s.departments.IsDepartmentHeadOf(head, lieschen)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.departments.IsDepartmentHeadOf(head, boss)
	s.Require().NoError(err)
	s.False(ok, "boss is no member of the department")

	ok, err = s.departments.IsDepartmentHeadOf(lieschen, head)
	s.Require().NoError(err)
	s.False(ok, "lieschen lacks the role")

	ok, err = s.departments.IsSecondStageAuthorityOf(second, lieschen)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.departments.IsInTwoStageDepartment(lieschen)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.departments.IsInTwoStageDepartment(boss)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *MySQLRepositorySuite) TestApplicationsOfColleagues() {
	lieschen, max := s.person("lieschen"), s.person("max")
	overlapping := s.application(max, model.StatusWaiting, day(2015, time.November, 4), day(2015, time.November, 5))
	s.application(max, model.StatusRejected, day(2015, time.November, 5), day(2015, time.November, 5))
	s.application(max, model.StatusAllowed, day(2015, time.December, 1), day(2015, time.December, 3))
	s.application(lieschen, model.StatusWaiting, day(2015, time.November, 5), day(2015, time.November, 6))

	list, err := s.departments.GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(lieschen, day(2015, time.November, 5), day(2015, time.November, 6))
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(overlapping.ID, list[0].ID)
	s.Equal("Max", list[0].Person.FirstName)
}

func (s *MySQLRepositorySuite) TestApplicationRoundTrip() {
	lieschen, boss := s.person("lieschen"), s.person("boss")
	app := s.application(lieschen, model.StatusWaiting, day(2015, time.November, 5), day(2015, time.November, 6))

	app.Status = model.StatusAllowed
	app.BossID = &boss.ID
	s.Require().NoError(s.apps.UpdateWithComment(&app, &model.ApplicationComment{
		PersonID: boss.ID, Action: model.ActionAllowed, Text: "Viel Spaß",
	}))

	got, err := s.apps.GetByID(app.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusAllowed, got.Status)
	s.Equal("Lieschen", got.Person.FirstName)
	s.True(got.Person.HasRole(model.RoleUser))
	s.Require().NotNil(got.Boss)
	s.Equal("boss", got.Boss.LoginName)
	s.Equal(day(2015, time.November, 5), got.StartDate.UTC())

	allowed, err := s.apps.GetByStatus(model.StatusAllowed)
	s.Require().NoError(err)
	s.Len(allowed, 1)

	comments, err := s.apps.GetComments(app.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("boss", comments[0].Person.LoginName)

	_, err = s.apps.GetByID(9999)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *MySQLRepositorySuite) TestMailSettingsAreReadFresh() {
	mail, err := s.settings.GetCurrentMailSettings()
	s.Require().NoError(err)
	s.Equal("seeded.example.org", mail.Host)

	settings, err := s.settings.GetSettings()
	s.Require().NoError(err)
	settings.Mail.Host = "smtp.example.org"
	settings.Mail.Active = true
	s.Require().NoError(s.settings.Save(settings))

	mail, err = s.settings.GetCurrentMailSettings()
	s.Require().NoError(err)
	s.Equal("smtp.example.org", mail.Host)
	s.True(mail.Active)
}

func (s *MySQLRepositorySuite) TestSettingsDefaultsOnEmptyTable() {
	s.Require().NoError(s.mysql.TruncateTables("settings"))

	mail, err := s.settings.GetCurrentMailSettings()
	s.Require().NoError(err)
	s.Equal("default.example.org", mail.Host)
}

func (s *MySQLRepositorySuite) TestSickNotesStartedBefore() {
	max := s.person("max")
	early := model.SickNote{PersonID: max.ID, StartDate: day(2015, time.September, 1), EndDate: day(2015, time.October, 30), DayLength: model.DayLengthFull, Status: model.SickNoteActive}
	late := model.SickNote{PersonID: max.ID, StartDate: day(2015, time.October, 19), EndDate: day(2015, time.October, 23), DayLength: model.DayLengthFull, Status: model.SickNoteActive}
	converted := model.SickNote{PersonID: max.ID, StartDate: day(2015, time.August, 1), EndDate: day(2015, time.August, 5), DayLength: model.DayLengthFull, Status: model.SickNoteConverted}
	for _, n := range []*model.SickNote{&early, &late, &converted} {
		s.Require().NoError(s.sickNotes.Create(n))
	}

	list, err := s.sickNotes.GetActiveStartedBefore(day(2015, time.October, 1))
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(early.ID, list[0].ID)
	s.Equal("max", list[0].Person.LoginName)

	early.EndOfSickPayNotified = true
	s.Require().NoError(s.sickNotes.Update(&early))
	got, err := s.sickNotes.GetByID(early.ID)
	s.Require().NoError(err)
	s.True(got.EndOfSickPayNotified)
}

func (s *MySQLRepositorySuite) TestOvertimeWithComment() {
	max := s.person("max")
	o := model.Overtime{PersonID: max.ID, StartDate: day(2015, time.October, 1), EndDate: day(2015, time.October, 1), Hours: 2.5}
	c := model.OvertimeComment{PersonID: max.ID, Action: "CREATED", Text: "Release"}
	s.Require().NoError(s.overtime.Create(&o, &c))
	s.Equal(o.ID, c.OvertimeID)

	list, err := s.overtime.GetByPersonID(max.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.InDelta(2.5, list[0].Hours, 0.001)
}

func (s *MySQLRepositorySuite) TestAccountsByYear() {
	max, lieschen := s.person("max"), s.person("lieschen")
	for _, a := range []model.Account{
		{PersonID: max.ID, Year: 2015, AnnualVacationDays: 30, VacationDays: 30},
		{PersonID: lieschen.ID, Year: 2015, AnnualVacationDays: 28, VacationDays: 28},
		{PersonID: max.ID, Year: 2016, AnnualVacationDays: 30, VacationDays: 30},
	} {
		a := a
		s.Require().NoError(s.accounts.Save(&a))
	}

	list, err := s.accounts.GetByYear(2015)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.NotEmpty(list[0].Person.LoginName)
}

func (s *MySQLRepositorySuite) TestUpdateWithCommentRollsBack() {
	lieschen := s.person("lieschen")
	app := s.application(lieschen, model.StatusWaiting, day(2015, time.November, 5), day(2015, time.November, 6))

	app.Status = model.StatusRejected
	// Kolom text dibatasi 200 karakter, insert komentar gagal.
	err := s.apps.UpdateWithComment(&app, &model.ApplicationComment{
		PersonID: lieschen.ID, Action: model.ActionRejected, Text: strings.Repeat("x", 300),
	})
	s.Require().Error(err)

	got, err := s.apps.GetByID(app.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusWaiting, got.Status)
	comments, err := s.apps.GetComments(app.ID)
	s.Require().NoError(err)
	s.Empty(comments)
}

func (s *MySQLRepositorySuite) TestAccountSaveTwiceForSameYear() {
	max := s.person("max")
	s.Require().NoError(s.accounts.Save(&model.Account{PersonID: max.ID, Year: 2016, AnnualVacationDays: 30, VacationDays: 30, RemainingVacationDays: 4}))
	s.Require().NoError(s.accounts.Save(&model.Account{PersonID: max.ID, Year: 2016, AnnualVacationDays: 30, VacationDays: 30, RemainingVacationDays: 7}))

	list, err := s.accounts.GetByYear(2016)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(7.0, list[0].RemainingVacationDays)
}
