package repository

import (
	"leave-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	GetByYear(year int) ([]model.Account, error)
	Save(account *model.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db}
}

func (r *accountRepository) GetByYear(year int) ([]model.Account, error) {
	var list []model.Account
	err := r.db.Preload("Person").Where("year = ?", year).Order("person_id").Find(&list).Error
	return list, err
}

// Save inserts the account or, when the person already has one for that
// year, overwrites its day counts.
func (r *accountRepository) Save(account *model.Account) error {
	if account.ID != 0 {
		return r.db.Omit(clause.Associations).Save(account).Error
	}
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "person_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"annual_vacation_days", "vacation_days", "remaining_vacation_days", "updated_at", "deleted_at"}),
	}).Create(account).Error
}
