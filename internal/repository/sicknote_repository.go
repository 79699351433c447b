package repository

import (
	"time"

	"leave-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SickNoteRepository interface {
	Create(note *model.SickNote) error
	GetByID(id uint) (*model.SickNote, error)
	Update(note *model.SickNote) error
	GetActiveStartedBefore(day time.Time) ([]model.SickNote, error)
}

type sickNoteRepository struct {
	db *gorm.DB
}

func NewSickNoteRepository(db *gorm.DB) SickNoteRepository {
	return &sickNoteRepository{db}
}

func (r *sickNoteRepository) Create(note *model.SickNote) error {
	return r.db.Omit(clause.Associations).Create(note).Error
}

func (r *sickNoteRepository) GetByID(id uint) (*model.SickNote, error) {
	var note model.SickNote
	err := r.db.Preload("Person").First(&note, id).Error
	return &note, err
}

func (r *sickNoteRepository) Update(note *model.SickNote) error {
	return r.db.Omit(clause.Associations).Save(note).Error
}

func (r *sickNoteRepository) GetActiveStartedBefore(day time.Time) ([]model.SickNote, error) {
	var list []model.SickNote
	err := r.db.Preload("Person").
		Where("status = ? AND start_date <= ?", model.SickNoteActive, day).
		Order("start_date").
		Find(&list).Error
	return list, err
}
