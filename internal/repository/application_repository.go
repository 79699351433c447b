package repository

import (
	"leave-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	Create(app *model.Application) error
	GetByID(id uint) (*model.Application, error)
	GetByPersonID(personID uint) ([]model.Application, error)
	GetByStatus(status model.ApplicationStatus) ([]model.Application, error)
	Update(app *model.Application) error
	CreateWithComment(app *model.Application, comment *model.ApplicationComment) error
	UpdateWithComment(app *model.Application, comment *model.ApplicationComment) error
	CreateComment(comment *model.ApplicationComment) error
	GetComments(applicationID uint) ([]model.ApplicationComment, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db}
}

func (r *applicationRepository) Create(app *model.Application) error {
	return r.db.Omit(clause.Associations).Create(app).Error
}

func (r *applicationRepository) GetByID(id uint) (*model.Application, error) {
	var app model.Application
	err := r.withPeople().First(&app, id).Error
	return &app, err
}

func (r *applicationRepository) GetByPersonID(personID uint) ([]model.Application, error) {
	var list []model.Application
	err := r.withPeople().Where("person_id = ?", personID).Order("start_date desc").Find(&list).Error
	return list, err
}

func (r *applicationRepository) GetByStatus(status model.ApplicationStatus) ([]model.Application, error) {
	var list []model.Application
	err := r.withPeople().Where("status = ?", status).Order("application_date, id").Find(&list).Error
	return list, err
}

// Update hanya menyimpan kolom aplikasi, relasi Person tidak ikut di-upsert
func (r *applicationRepository) Update(app *model.Application) error {
	return r.db.Omit(clause.Associations).Save(app).Error
}

// CreateWithComment menyimpan aplikasi baru dan komentarnya dalam satu transaksi
func (r *applicationRepository) CreateWithComment(app *model.Application, comment *model.ApplicationComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(app).Error; err != nil {
			return err
		}
		comment.ApplicationID = app.ID
		return tx.Omit(clause.Associations).Create(comment).Error
	})
}

// UpdateWithComment saves a status change and the comment recording it. Both
// are rolled back when either write fails.
func (r *applicationRepository) UpdateWithComment(app *model.Application, comment *model.ApplicationComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(app).Error; err != nil {
			return err
		}
		comment.ApplicationID = app.ID
		return tx.Omit(clause.Associations).Create(comment).Error
	})
}

func (r *applicationRepository) CreateComment(comment *model.ApplicationComment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *applicationRepository) GetComments(applicationID uint) ([]model.ApplicationComment, error) {
	var list []model.ApplicationComment
	err := r.db.Preload("Person").Where("application_id = ?", applicationID).Order("created_at, id").Find(&list).Error
	return list, err
}

func (r *applicationRepository) withPeople() *gorm.DB {
	return r.db.
		Preload("Person.Permissions").
		Preload("Applier").
		Preload("Boss").
		Preload("Canceller").
		Preload("HolidayReplacement")
}
