package model

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser                 Role = "USER"
	RoleDepartmentHead       Role = "DEPARTMENT_HEAD"
	RoleSecondStageAuthority Role = "SECOND_STAGE_AUTHORITY"
	RoleBoss                 Role = "BOSS"
	RoleOffice               Role = "OFFICE"
	RoleInactive             Role = "INACTIVE"
)

// Notification is the kind of mail a person subscribes to.
type Notification string

const (
	NotificationUser                 Notification = "NOTIFICATION_USER"
	NotificationDepartmentHead       Notification = "NOTIFICATION_DEPARTMENT_HEAD"
	NotificationSecondStageAuthority Notification = "NOTIFICATION_SECOND_STAGE_AUTHORITY"
	NotificationBoss                 Notification = "NOTIFICATION_BOSS"
	NotificationOffice               Notification = "NOTIFICATION_OFFICE"
	NotificationOvertimeOffice       Notification = "OVERTIME_NOTIFICATION_OFFICE"
)

var ErrConflictingNotifications = errors.New("person cannot be notified as boss and department head")

type Person struct {
	gorm.Model
	LoginName string `json:"login_name" gorm:"unique;not null"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"-"`

	Permissions   []PersonPermission   `json:"permissions" gorm:"foreignKey:PersonID"`
	Notifications []PersonNotification `json:"notifications" gorm:"foreignKey:PersonID"`
}

type PersonPermission struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	PersonID uint `json:"-" gorm:"index;uniqueIndex:idx_person_permission"`
	Role     Role `json:"role" gorm:"size:40;uniqueIndex:idx_person_permission"`
}

type PersonNotification struct {
	ID           uint         `json:"-" gorm:"primaryKey"`
	PersonID     uint         `json:"-" gorm:"index;uniqueIndex:idx_person_notification"`
	Notification Notification `json:"notification" gorm:"size:60;uniqueIndex:idx_person_notification"`
}

// NiceName is the name shown in mails and in the UI.
func (p Person) NiceName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.LoginName
	}
	return name
}

func (p Person) HasRole(role Role) bool {
	for _, r := range p.Permissions {
		if r.Role == role {
			return true
		}
	}
	return false
}

func (p Person) HasNotification(n Notification) bool {
	for _, pn := range p.Notifications {
		if pn.Notification == n {
			return true
		}
	}
	return false
}

// CheckNotifications enforces that nobody is notified both as boss and as
// department head. Recipient resolution concatenates both groups without
// deduplication and relies on this.
func (p Person) CheckNotifications() error {
	if p.HasNotification(NotificationBoss) && p.HasNotification(NotificationDepartmentHead) {
		return ErrConflictingNotifications
	}
	return nil
}

func (p Person) RoleNames() []string {
	names := make([]string, 0, len(p.Permissions))
	for _, r := range p.Permissions {
		names = append(names, string(r.Role))
	}
	return names
}
