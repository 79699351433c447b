package model

import (
	"time"

	"gorm.io/gorm"
)

// MailSettings is edited by the office at runtime; senders must read it
// right before each delivery.
type MailSettings struct {
	Active        bool   `json:"active"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	Username      string `json:"username"`
	Password      string `json:"password,omitempty"`
	From          string `json:"from"`
	Administrator string `json:"administrator"`
}

type Settings struct {
	gorm.Model
	MaximumAnnualVacationDays int          `json:"maximum_annual_vacation_days" gorm:"default:40"`
	MaximumMonthsToApplyFor   int          `json:"maximum_months_to_apply_for" gorm:"default:12"`
	DaysBeforeEndOfSickPay    int          `json:"days_before_end_of_sick_pay" gorm:"default:7"`
	MaximumSickPayDays        int          `json:"maximum_sick_pay_days" gorm:"default:42"`
	Mail                      MailSettings `json:"mail" gorm:"embedded;embeddedPrefix:mail_"`
}

type SickNoteStatus string

const (
	SickNoteActive    SickNoteStatus = "ACTIVE"
	SickNoteConverted SickNoteStatus = "CONVERTED_TO_VACATION"
	SickNoteCancelled SickNoteStatus = "CANCELLED"
)

type SickNote struct {
	gorm.Model
	PersonID  uint           `json:"person_id"`
	StartDate time.Time      `json:"start_date" gorm:"type:date"`
	EndDate   time.Time      `json:"end_date" gorm:"type:date"`
	DayLength DayLength      `json:"day_length" gorm:"size:10"`
	Status    SickNoteStatus `json:"status" gorm:"size:30;default:ACTIVE"`

	EndOfSickPayNotified bool `json:"end_of_sick_pay_notified"`

	Person Person `json:"person" gorm:"foreignKey:PersonID"`
}

type Account struct {
	gorm.Model
	PersonID              uint    `json:"person_id" gorm:"uniqueIndex:idx_account_year"`
	Year                  int     `json:"year" gorm:"uniqueIndex:idx_account_year"`
	AnnualVacationDays    float64 `json:"annual_vacation_days"`
	VacationDays          float64 `json:"vacation_days"`
	RemainingVacationDays float64 `json:"remaining_vacation_days"`

	Person Person `json:"person" gorm:"foreignKey:PersonID"`
}

type Overtime struct {
	gorm.Model
	PersonID  uint      `json:"person_id"`
	StartDate time.Time `json:"start_date" gorm:"type:date"`
	EndDate   time.Time `json:"end_date" gorm:"type:date"`
	Hours     float64   `json:"hours"`

	Person Person `json:"person" gorm:"foreignKey:PersonID"`
}

type OvertimeComment struct {
	gorm.Model
	OvertimeID uint   `json:"overtime_id" gorm:"index"`
	PersonID   uint   `json:"person_id"`
	Action     string `json:"action" gorm:"size:30"`
	Text       string `json:"text" gorm:"size:200"`

	Person Person `json:"person" gorm:"foreignKey:PersonID"`
}

// Absence is the calendar view of an application or sick note; it is only
// carried into calendar error notifications.
type Absence struct {
	PersonName string    `json:"person_name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	AllDay     bool      `json:"all_day"`
}
