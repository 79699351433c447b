package validator

import (
	"strings"

	"leave-backend/internal/metrics"
)

// Error codes, resolved to user facing text by the client.
const (
	ErrMandatoryField = "error.mandatory.field"
	ErrPeriod         = "error.period"
	ErrPast           = "error.period.past"
	ErrPastWide       = "error.period.past.wide"
	ErrLength         = "error.length"
	ErrTooFarAhead    = "error.too.long"
	ErrTypeMismatch   = "error.type.mismatch"
)

type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// Errors collects field errors and global (object level) errors. The zero
// value is ready to use and a binder may record errors before validation
// runs.
type Errors struct {
	fields []FieldError
	global []string
}

func (e *Errors) RejectValue(field, code string) {
	e.fields = append(e.fields, FieldError{Field: field, Code: code})
	metrics.ValidationRejected.WithLabelValues(code).Inc()
}

func (e *Errors) Reject(code string) {
	e.global = append(e.global, code)
	metrics.ValidationRejected.WithLabelValues(code).Inc()
}

func (e *Errors) FieldErrors(field string) []FieldError {
	var out []FieldError
	for _, fe := range e.fields {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

func (e *Errors) AllFieldErrors() []FieldError {
	return e.fields
}

func (e *Errors) GlobalErrors() []string {
	return e.global
}

func (e *Errors) HasErrors() bool {
	return len(e.fields) > 0 || len(e.global) > 0
}

// Fields groups the codes by field, the shape handlers return.
func (e *Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for _, fe := range e.fields {
		out[fe.Field] = append(out[fe.Field], fe.Code)
	}
	return out
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.fields)+len(e.global))
	for _, fe := range e.fields {
		parts = append(parts, fe.Field+": "+fe.Code)
	}
	parts = append(parts, e.global...)
	return "validation failed: " + strings.Join(parts, ", ")
}
