package notification

import (
	"strconv"

	"leave-backend/internal/model"
)

// Model is the data a mail template is rendered with.
type Model map[string]any

// MessageSource resolves localized texts; unknown keys come back unchanged.
type MessageSource interface {
	Message(key string) string
}

const (
	applicationPath = "web/application/"
	overtimePath    = "web/overtime/"
)

// ContextBuilder assembles template models. It does not validate the data it
// is given.
type ContextBuilder struct {
	applicationURL string
	messages       MessageSource
}

func NewContextBuilder(applicationURL string, messages MessageSource) *ContextBuilder {
	return &ContextBuilder{applicationURL: applicationURL, messages: messages}
}

// ForApplication is the model shared by all status change mails. The comment
// is optional; reminders for example never carry one.
func (b *ContextBuilder) ForApplication(application model.Application, comment *model.ApplicationComment) Model {
	m := Model{
		"application":  application,
		"vacationType": application.VacationType.DisplayName(),
		"dayLength":    b.DayLength(application.DayLength),
		"period":       application.Period(),
		"link":         b.ApplicationLink(application.ID),
	}
	if comment != nil {
		m["comment"] = *comment
	}
	return m
}

func (b *ContextBuilder) DayLength(d model.DayLength) string {
	return b.messages.Message(string(d))
}

func (b *ContextBuilder) ApplicationLink(id uint) string {
	return b.applicationURL + applicationPath + strconv.FormatUint(uint64(id), 10)
}

func (b *ContextBuilder) OvertimeLink(id uint) string {
	return b.applicationURL + overtimePath + strconv.FormatUint(uint64(id), 10)
}

func (b *ContextBuilder) ApplicationURL() string {
	return b.applicationURL
}
