package validator

import (
	"time"

	"leave-backend/internal/model"
	"leave-backend/internal/properties"
)

// MaximumMonthsKey is the custom.properties key limiting how far ahead leave
// may be booked.
const MaximumMonthsKey = "maximum.months"

// AdvanceBookingPolicy decides whether a well-formed full-day period starts
// too far in the future.
type AdvanceBookingPolicy interface {
	ValidateMaximumVacation(form model.ApplicationForm, errs *Errors)
}

type monthsInAdvancePolicy struct {
	months int
	now    func() time.Time
}

type noPolicy struct{}

func (noPolicy) ValidateMaximumVacation(model.ApplicationForm, *Errors) {}

// NewAdvanceBookingPolicy reads the horizon from the custom properties. When
// the key is missing or invalid the returned policy accepts everything.
func NewAdvanceBookingPolicy(custom *properties.Table, now func() time.Time) AdvanceBookingPolicy {
	if custom == nil {
		return noPolicy{}
	}
	months, ok := custom.Int(MaximumMonthsKey)
	if !ok || months <= 0 {
		return noPolicy{}
	}
	if now == nil {
		now = time.Now
	}
	return &monthsInAdvancePolicy{months: months, now: now}
}

func (p *monthsInAdvancePolicy) ValidateMaximumVacation(form model.ApplicationForm, errs *Errors) {
	if form.EndDate == nil {
		return
	}
	limit := midnight(p.now()).AddDate(0, p.months, 0)
	if form.EndDate.After(limit) {
		errs.Reject(ErrTooFarAhead)
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
