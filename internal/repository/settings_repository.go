package repository

import (
	"fmt"

	"leave-backend/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	GetSettings() (*model.Settings, error)
	Save(settings *model.Settings) error
	GetCurrentMailSettings() (model.MailSettings, error)
}

type settingsRepository struct {
	db       *gorm.DB
	defaults model.Settings
}

// NewSettingsRepository uses defaults for the single settings row when the
// table is still empty.
func NewSettingsRepository(db *gorm.DB, defaults model.Settings) SettingsRepository {
	return &settingsRepository{db: db, defaults: defaults}
}

// Asumsi hanya ada satu baris settings, ambil yang pertama
func (r *settingsRepository) GetSettings() (*model.Settings, error) {
	var settings model.Settings
	err := r.db.Order("id").Attrs(r.defaults).FirstOrCreate(&settings).Error
	return &settings, err
}

func (r *settingsRepository) Save(settings *model.Settings) error {
	return r.db.Save(settings).Error
}

// GetCurrentMailSettings always goes to the database; the office may have
// changed the mail server since the last mail.
func (r *settingsRepository) GetCurrentMailSettings() (model.MailSettings, error) {
	settings, err := r.GetSettings()
	if err != nil {
		return model.MailSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings.Mail, nil
}
