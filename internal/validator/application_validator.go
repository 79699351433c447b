package validator

import (
	"strings"
	"time"
	"unicode/utf8"

	"leave-backend/internal/model"
)

// MaxTextLength caps every free-text field of an application or comment.
const MaxTextLength = 200

// Form field names as reported in FieldError.Field.
const (
	FieldStartDate     = "startDate"
	FieldEndDate       = "endDate"
	FieldStartDateHalf = "startDateHalf"
	FieldReason        = "reason"
	FieldAddress       = "address"
	FieldComment       = "comment"
)

// PastWarning is advisory output for periods starting before today. Force
// tells whether the user may confirm and submit anyway.
type PastWarning struct {
	Code  string `json:"time_error"`
	Force bool   `json:"set_force"`
}

type ApplicationValidator struct {
	policy AdvanceBookingPolicy
	now    func() time.Time
}

func NewApplicationValidator(policy AdvanceBookingPolicy, now func() time.Time) *ApplicationValidator {
	if policy == nil {
		policy = noPolicy{}
	}
	if now == nil {
		now = time.Now
	}
	return &ApplicationValidator{policy: policy, now: now}
}

// Validate checks a submitted application form. errs may already hold errors
// recorded by the binder; mandatory-date errors are only added for fields
// without an error.
func (v *ApplicationValidator) Validate(form model.ApplicationForm, errs *Errors) {
	v.validateDateFields(form, errs)

	if form.VacationType != model.VacationTypeHoliday && !hasText(form.Reason) {
		errs.RejectValue(FieldReason, ErrMandatoryField)
	}

	validateStringField(form.Reason, FieldReason, errs)
	validateStringField(form.Address, FieldAddress, errs)
	validateStringField(form.Comment, FieldComment, errs)
}

func (v *ApplicationValidator) validateDateFields(form model.ApplicationForm, errs *Errors) {
	if form.DayLength != model.DayLengthFull {
		if form.StartDateHalf == nil && len(errs.FieldErrors(FieldStartDateHalf)) == 0 {
			errs.RejectValue(FieldStartDateHalf, ErrMandatoryField)
		}
		return
	}

	if form.StartDate == nil && len(errs.FieldErrors(FieldStartDate)) == 0 {
		errs.RejectValue(FieldStartDate, ErrMandatoryField)
	}
	if form.EndDate == nil && len(errs.FieldErrors(FieldEndDate)) == 0 {
		errs.RejectValue(FieldEndDate, ErrMandatoryField)
	}
	if form.StartDate == nil || form.EndDate == nil {
		return
	}

	if form.StartDate.After(*form.EndDate) {
		errs.Reject(ErrPeriod)
		return
	}
	v.policy.ValidateMaximumVacation(form, errs)
}

// ValidatePast returns a warning when the period starts before today, nil
// otherwise.
func (v *ApplicationValidator) ValidatePast(form model.ApplicationForm) *PastWarning {
	start := form.EffectiveStart()
	if start == nil {
		return nil
	}

	now := v.now()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	if !day.Before(midnight(now)) {
		return nil
	}
	if day.Before(midnight(now).AddDate(-1, 0, 0)) {
		return &PastWarning{Code: ErrPastWide, Force: false}
	}
	return &PastWarning{Code: ErrPast, Force: true}
}

// ValidateComment checks the free text of a transition comment. mandatory is
// true for transitions that need a reason, e.g. rejection.
func (v *ApplicationValidator) ValidateComment(text string, mandatory bool, errs *Errors) {
	if hasText(text) {
		if !validLength(text, MaxTextLength) {
			errs.RejectValue(FieldComment, ErrLength)
		}
		return
	}
	if mandatory {
		errs.RejectValue(FieldComment, ErrMandatoryField)
	}
}

// ValidateShortenedForm is used when a sick note is converted into leave:
// only the reason is checked.
func (v *ApplicationValidator) ValidateShortenedForm(form model.ApplicationForm, errs *Errors) {
	if !hasText(form.Reason) {
		errs.RejectValue(FieldReason, ErrMandatoryField)
		return
	}
	validateStringField(form.Reason, FieldReason, errs)
}

func validateStringField(text, field string, errs *Errors) {
	if hasText(text) && !validLength(text, MaxTextLength) {
		errs.RejectValue(field, ErrLength)
	}
}

func validLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
