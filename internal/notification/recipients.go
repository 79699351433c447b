package notification

import (
	"fmt"
	"time"

	"leave-backend/internal/model"
)

// PersonLookup finds people by the notification they subscribed to, in a
// stable order.
type PersonLookup interface {
	GetByNotification(n model.Notification) ([]model.Person, error)
}

// DepartmentLookup answers questions about the department structure.
type DepartmentLookup interface {
	IsDepartmentHeadOf(candidate, subject model.Person) (bool, error)
	IsSecondStageAuthorityOf(candidate, subject model.Person) (bool, error)
	GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(person model.Person, start, end time.Time) ([]model.Application, error)
}

// Audience selects who receives a notification about an application.
type Audience int

const (
	AudienceBossesAndDepartmentHeads Audience = iota
	AudienceSecondStageAuthorities
	AudienceOffice
	AudienceOvertimeOffice
	AudienceApplicant
	AudienceHolidayReplacement
)

func (a Audience) String() string {
	switch a {
	case AudienceBossesAndDepartmentHeads:
		return "bosses-and-department-heads"
	case AudienceSecondStageAuthorities:
		return "second-stage-authorities"
	case AudienceOffice:
		return "office"
	case AudienceOvertimeOffice:
		return "overtime-office"
	case AudienceApplicant:
		return "applicant"
	case AudienceHolidayReplacement:
		return "holiday-replacement"
	}
	return fmt.Sprintf("audience(%d)", int(a))
}

type Resolver struct {
	persons     PersonLookup
	departments DepartmentLookup
}

func NewResolver(persons PersonLookup, departments DepartmentLookup) *Resolver {
	return &Resolver{persons: persons, departments: departments}
}

// Resolve returns the recipients for application in lookup order. An empty
// result is not an error.
//
// Bosses and department heads are concatenated without deduplication: a
// person never carries both notifications (see Person.CheckNotifications).
func (r *Resolver) Resolve(audience Audience, application model.Application) ([]model.Person, error) {
	switch audience {
	case AudienceBossesAndDepartmentHeads:
		return r.bossesAndDepartmentHeads(application.Person)
	case AudienceSecondStageAuthorities:
		return r.filtered(model.NotificationSecondStageAuthority, application.Person, r.departments.IsSecondStageAuthorityOf)
	case AudienceOffice:
		return r.Office()
	case AudienceOvertimeOffice:
		return r.OvertimeOffice()
	case AudienceApplicant:
		return []model.Person{application.Person}, nil
	case AudienceHolidayReplacement:
		if application.HolidayReplacement == nil {
			return nil, nil
		}
		return []model.Person{*application.HolidayReplacement}, nil
	}
	return nil, fmt.Errorf("unknown audience %s", audience)
}

func (r *Resolver) bossesAndDepartmentHeads(subject model.Person) ([]model.Person, error) {
	bosses, err := r.persons.GetByNotification(model.NotificationBoss)
	if err != nil {
		return nil, fmt.Errorf("get bosses: %w", err)
	}
	heads, err := r.filtered(model.NotificationDepartmentHead, subject, r.departments.IsDepartmentHeadOf)
	if err != nil {
		return nil, err
	}
	out := make([]model.Person, 0, len(bosses)+len(heads))
	out = append(out, bosses...)
	return append(out, heads...), nil
}

func (r *Resolver) filtered(n model.Notification, subject model.Person, responsible func(candidate, subject model.Person) (bool, error)) ([]model.Person, error) {
	candidates, err := r.persons.GetByNotification(n)
	if err != nil {
		return nil, fmt.Errorf("get persons with %s: %w", n, err)
	}
	var out []model.Person
	for _, c := range candidates {
		ok, err := responsible(c, subject)
		if err != nil {
			return nil, fmt.Errorf("check responsibility of person %d: %w", c.ID, err)
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Office returns everybody receiving office notifications, unfiltered.
func (r *Resolver) Office() ([]model.Person, error) {
	return r.persons.GetByNotification(model.NotificationOffice)
}

func (r *Resolver) OvertimeOffice() ([]model.Person, error) {
	return r.persons.GetByNotification(model.NotificationOvertimeOffice)
}
