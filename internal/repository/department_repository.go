package repository

import (
	"time"

	"leave-backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(dept *model.Department) error
	GetAll() ([]model.Department, error)
	IsDepartmentHeadOf(candidate, subject model.Person) (bool, error)
	IsSecondStageAuthorityOf(candidate, subject model.Person) (bool, error)
	IsInTwoStageDepartment(person model.Person) (bool, error)
	GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(person model.Person, start, end time.Time) ([]model.Application, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db}
}

func (r *departmentRepository) Create(dept *model.Department) error {
	return r.db.Create(dept).Error
}

func (r *departmentRepository) GetAll() ([]model.Department, error) {
	var list []model.Department
	err := r.db.Preload("Members").Preload("DepartmentHeads").Preload("SecondStageAuthorities").
		Order("name").Find(&list).Error
	return list, err
}

// IsDepartmentHeadOf is true when candidate holds the department head role and
// heads a department subject is a member of.
func (r *departmentRepository) IsDepartmentHeadOf(candidate, subject model.Person) (bool, error) {
	if !candidate.HasRole(model.RoleDepartmentHead) {
		return false, nil
	}
	return r.responsibleFor("department_heads", candidate, subject)
}

func (r *departmentRepository) IsSecondStageAuthorityOf(candidate, subject model.Person) (bool, error) {
	if !candidate.HasRole(model.RoleSecondStageAuthority) {
		return false, nil
	}
	return r.responsibleFor("department_second_stage_authorities", candidate, subject)
}

func (r *departmentRepository) responsibleFor(joinTable string, candidate, subject model.Person) (bool, error) {
	var n int64
	err := r.db.Table(joinTable+" AS resp").
		Joins("JOIN department_members dm ON dm.department_id = resp.department_id").
		Where("resp.person_id = ? AND dm.person_id = ?", candidate.ID, subject.ID).
		Count(&n).Error
	return n > 0, err
}

// IsInTwoStageDepartment is true when any department of person requires a
// second approval.
func (r *departmentRepository) IsInTwoStageDepartment(person model.Person) (bool, error) {
	var n int64
	err := r.db.Model(&model.Department{}).
		Joins("JOIN department_members dm ON dm.department_id = departments.id").
		Where("dm.person_id = ? AND departments.two_stage_approval = ?", person.ID, true).
		Count(&n).Error
	return n > 0, err
}

// GetApplicationsForLeaveOfMembersInDepartmentsOfPerson lists the open or
// allowed applications of person's colleagues overlapping start..end. The
// person's own applications are not included.
func (r *departmentRepository) GetApplicationsForLeaveOfMembersInDepartmentsOfPerson(person model.Person, start, end time.Time) ([]model.Application, error) {
	colleagues := r.db.Table("department_members AS own").
		Select("other.person_id").
		Joins("JOIN department_members other ON other.department_id = own.department_id").
		Where("own.person_id = ? AND other.person_id <> ?", person.ID, person.ID)

	var list []model.Application
	err := r.db.Preload("Person").
		Where("person_id IN (?)", colleagues).
		Where("status IN ?", []model.ApplicationStatus{model.StatusWaiting, model.StatusTemporaryAllowed, model.StatusAllowed}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date, id").
		Find(&list).Error
	return list, err
}
