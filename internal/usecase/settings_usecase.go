package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
	"leave-backend/internal/validator"
)

type SettingsNotifier interface {
	SendSuccessfullyUpdatedSettingsNotification(settings model.Settings)
}

type SettingsUsecase struct {
	repo     repository.SettingsRepository
	notifier SettingsNotifier
	logger   *zap.SugaredLogger
}

func NewSettingsUsecase(repo repository.SettingsRepository, notifier SettingsNotifier, logger *zap.SugaredLogger) *SettingsUsecase {
	return &SettingsUsecase{repo: repo, notifier: notifier, logger: logger.Named("settings")}
}

// Get returns the settings without the mail password.
func (u *SettingsUsecase) Get() (*model.Settings, error) {
	s, err := u.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.Mail.Password = ""
	return s, nil
}

// Update replaces the stored settings. An empty mail password keeps the
// stored one. The administrator is informed on success.
func (u *SettingsUsecase) Update(in model.Settings) (*model.Settings, error) {
	errs := &validator.Errors{}
	if in.Mail.Active {
		if strings.TrimSpace(in.Mail.Host) == "" {
			errs.RejectValue("mail.host", validator.ErrMandatoryField)
		}
		if in.Mail.Port <= 0 || in.Mail.Port > 65535 {
			errs.RejectValue("mail.port", validator.ErrTypeMismatch)
		}
		if strings.TrimSpace(in.Mail.From) == "" {
			errs.RejectValue("mail.from", validator.ErrMandatoryField)
		}
	}
	if in.DaysBeforeEndOfSickPay > in.MaximumSickPayDays {
		errs.RejectValue("daysBeforeEndOfSickPay", validator.ErrPeriod)
	}
	if errs.HasErrors() {
		return nil, errs
	}

	current, err := u.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	in.Model = current.Model
	if in.Mail.Password == "" {
		in.Mail.Password = current.Mail.Password
	}
	if err := u.repo.Save(&in); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	u.notifier.SendSuccessfullyUpdatedSettingsNotification(in)
	u.logger.Infow("Settings updated", "mailActive", in.Mail.Active, "mailHost", in.Mail.Host)
	out := in
	out.Mail.Password = ""
	return &out, nil
}
