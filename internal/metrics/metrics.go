package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MailSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_mail_sent_total",
		Help: "Mails handed to the SMTP server, per subject key",
	}, []string{"subject"})

	MailFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_mail_failed_total",
		Help: "Mails the SMTP transport rejected, per subject key",
	}, []string{"subject"})

	// MailSkipped counts mails not attempted because mail is switched off or
	// no recipient had an address.
	MailSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_mail_skipped_total",
		Help: "Mails not attempted, per subject key and reason",
	}, []string{"subject", "reason"})

	ValidationRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_validation_rejected_total",
		Help: "Validation errors returned to users, per error code",
	}, []string{"code"})
)
