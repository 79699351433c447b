package repository

import (
	"leave-backend/internal/model"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(person *model.Person) error
	FindByID(id uint) (*model.Person, error)
	FindByLoginName(loginName string) (*model.Person, error)
	GetAll() ([]model.Person, error)
	GetByNotification(n model.Notification) ([]model.Person, error)
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db}
}

// Create menyimpan person beserta permission dan notification-nya
func (r *personRepository) Create(person *model.Person) error {
	return r.db.Create(person).Error
}

func (r *personRepository) FindByID(id uint) (*model.Person, error) {
	var person model.Person
	err := r.db.Preload("Permissions").Preload("Notifications").First(&person, id).Error
	return &person, err
}

func (r *personRepository) FindByLoginName(loginName string) (*model.Person, error) {
	var person model.Person
	err := r.db.Preload("Permissions").Preload("Notifications").
		Where("login_name = ?", loginName).First(&person).Error
	return &person, err
}

func (r *personRepository) GetAll() ([]model.Person, error) {
	var list []model.Person
	err := r.db.Preload("Permissions").Preload("Notifications").Order("id").Find(&list).Error
	return list, err
}

// GetByNotification returns subscribers ordered by ID; recipient order in
// mails follows this order.
func (r *personRepository) GetByNotification(n model.Notification) ([]model.Person, error) {
	var list []model.Person
	err := r.db.Joins("JOIN person_notifications ON person_notifications.person_id = people.id").
		Where("person_notifications.notification = ?", n).
		Preload("Permissions").
		Preload("Notifications").
		Order("people.id").
		Find(&list).Error
	return list, err
}
