package database

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leave-backend/internal/model"
)

// SeedOptions controls the demo data. Password is shared by all seeded
// accounts.
type SeedOptions struct {
	Password string
	Mail     model.MailSettings
}

type seedPerson struct {
	login, first, last string
	roles              []model.Role
	notifications      []model.Notification
}

var seedPeople = []seedPerson{
	{"office", "Olga", "Office", []model.Role{model.RoleUser, model.RoleOffice},
		[]model.Notification{model.NotificationUser, model.NotificationOffice, model.NotificationOvertimeOffice}},
	{"boss", "Bruno", "Boss", []model.Role{model.RoleUser, model.RoleBoss},
		[]model.Notification{model.NotificationUser, model.NotificationBoss}},
	{"head", "Hanna", "Head", []model.Role{model.RoleUser, model.RoleDepartmentHead},
		[]model.Notification{model.NotificationUser, model.NotificationDepartmentHead}},
	{"secondstage", "Sven", "Second", []model.Role{model.RoleUser, model.RoleSecondStageAuthority},
		[]model.Notification{model.NotificationUser, model.NotificationSecondStageAuthority}},
	{"lieschen", "Lieschen", "Müller", []model.Role{model.RoleUser},
		[]model.Notification{model.NotificationUser}},
	{"max", "Max", "Muster", []model.Role{model.RoleUser},
		[]model.Notification{model.NotificationUser}},
}

// SeedAll fills an empty database with people, one two stage department and
// the settings row. Running it again keeps existing rows.
func SeedAll(db *gorm.DB, opts SeedOptions, logger *zap.SugaredLogger) error {
	// 1. Seed Settings
	settings := model.Settings{Mail: opts.Mail}
	if err := db.Order("id").Attrs(settings).FirstOrCreate(&settings).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	// 2. Seed Akun
	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	people := map[string]model.Person{}
	for _, sp := range seedPeople {
		p := model.Person{
			LoginName: sp.login,
			FirstName: sp.first,
			LastName:  sp.last,
			Email:     sp.login + "@example.org",
			Password:  string(hashed),
		}
		for _, r := range sp.roles {
			p.Permissions = append(p.Permissions, model.PersonPermission{Role: r})
		}
		for _, n := range sp.notifications {
			p.Notifications = append(p.Notifications, model.PersonNotification{Notification: n})
		}
		if err := p.CheckNotifications(); err != nil {
			return fmt.Errorf("seed %s: %w", sp.login, err)
		}
		if err := db.Where(model.Person{LoginName: p.LoginName}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed %s: %w", sp.login, err)
		}
		people[sp.login] = p
	}

	// 3. Seed Department (dengan persetujuan dua tahap)
	dept := model.Department{
		Name:             "Entwicklung",
		Description:      "Softwareentwicklung",
		TwoStageApproval: true,
	}
	if err := db.Where(model.Department{Name: dept.Name}).FirstOrCreate(&dept).Error; err != nil {
		return fmt.Errorf("seed department: %w", err)
	}
	assoc := []struct {
		name   string
		logins []string
	}{
		{"Members", []string{"head", "secondstage", "lieschen", "max"}},
		{"DepartmentHeads", []string{"head"}},
		{"SecondStageAuthorities", []string{"secondstage"}},
	}
	for _, a := range assoc {
		members := make([]model.Person, 0, len(a.logins))
		for _, login := range a.logins {
			members = append(members, people[login])
		}
		if err := db.Model(&dept).Association(a.name).Replace(members); err != nil {
			return fmt.Errorf("seed department %s: %w", a.name, err)
		}
	}

	logger.Infow("Seeding selesai", "people", len(people), "department", dept.Name)
	return nil
}
