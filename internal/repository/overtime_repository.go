package repository

import (
	"leave-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OvertimeRepository interface {
	Create(overtime *model.Overtime, comment *model.OvertimeComment) error
	GetByPersonID(personID uint) ([]model.Overtime, error)
}

type overtimeRepository struct {
	db *gorm.DB
}

func NewOvertimeRepository(db *gorm.DB) OvertimeRepository {
	return &overtimeRepository{db}
}

// Create menyimpan overtime dan komentarnya dalam satu transaksi
func (r *overtimeRepository) Create(overtime *model.Overtime, comment *model.OvertimeComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(overtime).Error; err != nil {
			return err
		}
		if comment == nil {
			return nil
		}
		comment.OvertimeID = overtime.ID
		return tx.Omit(clause.Associations).Create(comment).Error
	})
}

func (r *overtimeRepository) GetByPersonID(personID uint) ([]model.Overtime, error) {
	var list []model.Overtime
	err := r.db.Where("person_id = ?", personID).Order("start_date desc").Find(&list).Error
	return list, err
}
