package notification

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leave-backend/internal/metrics"
	"leave-backend/internal/model"
)

// SettingsProvider returns the mail settings as currently stored. It is asked
// before every delivery so changes made by the office apply to the next mail.
type SettingsProvider interface {
	GetCurrentMailSettings() (model.MailSettings, error)
}

// Message is one mail to all of its recipients.
type Message struct {
	ID      string
	From    string
	To      []string
	Subject string
	Body    string
}

// Transport delivers a message using the given settings.
type Transport interface {
	Send(settings model.MailSettings, msg Message) error
}

const (
	ReasonInactive    = "mail settings inactive"
	ReasonNoSettings  = "mail settings unavailable"
	ReasonNoRecipient = "no recipient with email address"
)

// DispatchResult is the outcome for one recipient. Callers only log it.
type DispatchResult struct {
	Recipient     string
	Delivered     bool
	FailureReason string
}

// Dispatcher sends mails on a best-effort basis: it never returns an error
// and never panics on delivery problems.
type Dispatcher struct {
	transport Transport
	settings  SettingsProvider
	subjects  MessageSource
	logger    *zap.SugaredLogger
}

func NewDispatcher(transport Transport, settings SettingsProvider, subjects MessageSource, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		settings:  settings,
		subjects:  subjects,
		logger:    logger.Named("mail"),
	}
}

// SendEmail sends body to every recipient that has an email address. A
// recipient list without addresses results in no delivery attempt.
func (d *Dispatcher) SendEmail(recipients []model.Person, subjectKey, body string) []DispatchResult {
	to := make([]string, 0, len(recipients))
	for _, p := range recipients {
		if strings.TrimSpace(p.Email) != "" {
			to = append(to, p.Email)
		}
	}
	if len(to) == 0 {
		d.logger.Debugw("No recipient with email address, mail not sent", "subjectKey", subjectKey, "recipients", len(recipients))
		metrics.MailSkipped.WithLabelValues(subjectKey, "no_recipients").Inc()
		return nil
	}

	settings, ok := d.currentSettings(subjectKey)
	if !ok {
		return failAll(to, ReasonNoSettings)
	}
	return d.deliver(settings, Message{
		From:    settings.From,
		To:      to,
		Subject: d.subjects.Message(subjectKey),
		Body:    body,
	}, subjectKey)
}

// SendTechnicalNotification sends body to the configured administrator.
func (d *Dispatcher) SendTechnicalNotification(subjectKey, body string) []DispatchResult {
	settings, ok := d.currentSettings(subjectKey)
	if !ok {
		return failAll([]string{"administrator"}, ReasonNoSettings)
	}
	return d.deliver(settings, Message{
		From:    settings.From,
		To:      []string{settings.Administrator},
		Subject: d.subjects.Message(subjectKey),
		Body:    body,
	}, subjectKey)
}

func (d *Dispatcher) currentSettings(subjectKey string) (model.MailSettings, bool) {
	settings, err := d.settings.GetCurrentMailSettings()
	if err != nil {
		d.logger.Errorw("Could not read mail settings, mail not sent", "subjectKey", subjectKey, "error", err)
		metrics.MailSkipped.WithLabelValues(subjectKey, "no_settings").Inc()
		return model.MailSettings{}, false
	}
	return settings, true
}

func (d *Dispatcher) deliver(settings model.MailSettings, msg Message, subjectKey string) []DispatchResult {
	if !settings.Active {
		for _, r := range msg.To {
			d.logger.Infow("No email configuration to send email", "recipient", r, "subjectKey", subjectKey)
		}
		metrics.MailSkipped.WithLabelValues(subjectKey, "inactive").Inc()
		return failAll(msg.To, ReasonInactive)
	}

	msg.ID = uuid.NewString()
	if err := d.transport.Send(settings, msg); err != nil {
		for _, r := range msg.To {
			d.logger.Errorw("Sending email failed", "recipient", r, "subjectKey", subjectKey, "messageID", msg.ID, "host", settings.Host, "error", err)
		}
		metrics.MailFailed.WithLabelValues(subjectKey).Inc()
		return failAll(msg.To, err.Error())
	}

	results := make([]DispatchResult, 0, len(msg.To))
	for _, r := range msg.To {
		d.logger.Infow("Sent email", "recipient", r, "subjectKey", subjectKey, "messageID", msg.ID)
		results = append(results, DispatchResult{Recipient: r, Delivered: true})
	}
	metrics.MailSent.WithLabelValues(subjectKey).Inc()
	return results
}

func failAll(recipients []string, reason string) []DispatchResult {
	results := make([]DispatchResult, 0, len(recipients))
	for _, r := range recipients {
		results = append(results, DispatchResult{Recipient: r, FailureReason: reason})
	}
	return results
}
