package model

import (
	"time"

	"gorm.io/gorm"
)

const DisplayDateFormat = "02.01.2006"

type DayLength string

const (
	DayLengthFull    DayLength = "FULL"
	DayLengthMorning DayLength = "MORNING"
	DayLengthNoon    DayLength = "NOON"
)

func (d DayLength) IsHalfDay() bool {
	return d == DayLengthMorning || d == DayLengthNoon
}

type VacationType string

const (
	VacationTypeHoliday      VacationType = "HOLIDAY"
	VacationTypeSpecialLeave VacationType = "SPECIALLEAVE"
	VacationTypeUnpaidLeave  VacationType = "UNPAIDLEAVE"
	VacationTypeOvertime     VacationType = "OVERTIME"
)

var vacationTypeDisplayNames = map[VacationType]string{
	VacationTypeHoliday:      "Erholungsurlaub",
	VacationTypeSpecialLeave: "Sonderurlaub",
	VacationTypeUnpaidLeave:  "Unbezahlter Urlaub",
	VacationTypeOvertime:     "Überstundenabbau",
}

func (v VacationType) DisplayName() string {
	if name, ok := vacationTypeDisplayNames[v]; ok {
		return name
	}
	return string(v)
}

func (v VacationType) Valid() bool {
	_, ok := vacationTypeDisplayNames[v]
	return ok
}

type ApplicationStatus string

const (
	StatusWaiting          ApplicationStatus = "WAITING"
	StatusTemporaryAllowed ApplicationStatus = "TEMPORARY_ALLOWED"
	StatusAllowed          ApplicationStatus = "ALLOWED"
	StatusRejected         ApplicationStatus = "REJECTED"
	StatusCancelled        ApplicationStatus = "CANCELLED"
	StatusRevoked          ApplicationStatus = "REVOKED"
)

// Application is a request for leave. For half-day requests StartDate and
// EndDate hold the same day.
type Application struct {
	gorm.Model
	PersonID             uint              `json:"person_id"`
	ApplierID            uint              `json:"applier_id"`
	BossID               *uint             `json:"boss_id"`
	CancellerID          *uint             `json:"canceller_id"`
	HolidayReplacementID *uint             `json:"holiday_replacement_id"`
	VacationType         VacationType      `json:"vacation_type" gorm:"size:30;not null"`
	DayLength            DayLength         `json:"day_length" gorm:"size:10;not null"`
	StartDate            time.Time         `json:"start_date" gorm:"type:date"`
	EndDate              time.Time         `json:"end_date" gorm:"type:date"`
	ApplicationDate      time.Time         `json:"application_date" gorm:"type:date"`
	Reason               string            `json:"reason" gorm:"size:200"`
	Address              string            `json:"address" gorm:"size:200"`
	Status               ApplicationStatus `json:"status" gorm:"size:30;default:WAITING"`
	RemindDate           *time.Time        `json:"remind_date" gorm:"type:date"`
	TwoStageApproval     bool              `json:"two_stage_approval"`

	// Relasi untuk Preload
	Person             Person  `json:"person" gorm:"foreignKey:PersonID"`
	Applier            Person  `json:"applier" gorm:"foreignKey:ApplierID"`
	Boss               *Person `json:"boss,omitempty" gorm:"foreignKey:BossID"`
	Canceller          *Person `json:"canceller,omitempty" gorm:"foreignKey:CancellerID"`
	HolidayReplacement *Person `json:"holiday_replacement,omitempty" gorm:"foreignKey:HolidayReplacementID"`
}

// Period renders the requested range the way mails show it, e.g.
// "05.11.2015 bis 06.11.2015".
func (a Application) Period() string {
	return a.StartDate.Format(DisplayDateFormat) + " bis " + a.EndDate.Format(DisplayDateFormat)
}

func (a Application) HalfDay() bool {
	return a.DayLength.IsHalfDay()
}

type CommentAction string

const (
	ActionApplied          CommentAction = "APPLIED"
	ActionTemporaryAllowed CommentAction = "TEMPORARY_ALLOWED"
	ActionAllowed          CommentAction = "ALLOWED"
	ActionRejected         CommentAction = "REJECTED"
	ActionCancelled        CommentAction = "CANCELLED"
	ActionRevoked          CommentAction = "REVOKED"
	ActionConverted        CommentAction = "CONVERTED"
	ActionCancelRequested  CommentAction = "CANCEL_REQUESTED"
	ActionReferred         CommentAction = "REFERRED"
)

// ApplicationComment records one transition of an application. Never updated.
type ApplicationComment struct {
	gorm.Model
	ApplicationID uint          `json:"application_id" gorm:"index"`
	PersonID      uint          `json:"person_id"`
	Action        CommentAction `json:"action" gorm:"size:30"`
	Text          string        `json:"text" gorm:"size:200"`

	Person Person `json:"person" gorm:"foreignKey:PersonID"`
}

// ApplicationForm is the submitted, not yet persisted application. Dates are
// nil when absent or when the binder could not parse them.
type ApplicationForm struct {
	PersonID             uint
	VacationType         VacationType
	DayLength            DayLength
	StartDate            *time.Time
	EndDate              *time.Time
	StartDateHalf        *time.Time
	Reason               string
	Address              string
	Comment              string
	HolidayReplacementID *uint
}

// EffectiveStart is the first day of the requested leave, or nil.
func (f ApplicationForm) EffectiveStart() *time.Time {
	if f.DayLength == DayLengthFull {
		return f.StartDate
	}
	return f.StartDateHalf
}
