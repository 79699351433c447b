package notification

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"leave-backend/internal/model"
)

// TemplateName identifies one mail body. There is one template per event and
// audience.
type TemplateName string

const (
	TemplateNewApplications                TemplateName = "new_applications"
	TemplateRemind                         TemplateName = "remind"
	TemplateTemporaryAllowedUser           TemplateName = "temporary_allowed_user"
	TemplateTemporaryAllowedSecondStage    TemplateName = "temporary_allowed_second_stage_authority"
	TemplateAllowedUser                    TemplateName = "allowed_user"
	TemplateAllowedOffice                  TemplateName = "allowed_office"
	TemplateRejected                       TemplateName = "rejected"
	TemplateRefer                          TemplateName = "refer"
	TemplateConfirm                        TemplateName = "confirm"
	TemplateNewApplicationByOffice         TemplateName = "new_application_by_office"
	TemplateCancelledByOffice              TemplateName = "cancelled_by_office"
	TemplateErrorSignApplication           TemplateName = "error_sign_application"
	TemplateErrorCalendarSync              TemplateName = "error_calendar_sync"
	TemplateErrorCalendarUpdate            TemplateName = "error_calendar_update"
	TemplateErrorCalendarDelete            TemplateName = "error_calendar_delete"
	TemplateUpdatedAccounts                TemplateName = "updated_accounts"
	TemplateUpdatedSettings                TemplateName = "updated_settings"
	TemplateSickNoteConverted              TemplateName = "sicknote_converted"
	TemplateSickNoteEndOfSickPay           TemplateName = "sicknote_end_of_sick_pay"
	TemplateNotifyHolidayReplacement       TemplateName = "notify_holiday_replacement"
	TemplateUserCreation                   TemplateName = "user_creation"
	TemplateApplicationCancellationRequest TemplateName = "application_cancellation_request"
	TemplateOvertimeOffice                 TemplateName = "overtime_office"
)

// Renderer turns a template and a model into a mail body.
type Renderer interface {
	Render(name TemplateName, m Model) (string, error)
}

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses all embedded templates once.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.New("mail").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(name TemplateName, m Model) (string, error) {
	var b bytes.Buffer
	if err := r.templates.ExecuteTemplate(&b, string(name)+".tmpl", m); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return b.String(), nil
}

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	// Dates are calendar days; formatting must not shift them into another zone.
	fm["formatDate"] = func(t time.Time) string {
		return t.Format(model.DisplayDateFormat)
	}
	return fm
}
