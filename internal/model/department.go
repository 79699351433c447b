package model

import "gorm.io/gorm"

type Department struct {
	gorm.Model
	Name             string `json:"name" gorm:"not null"`
	Description      string `json:"description"`
	TwoStageApproval bool   `json:"two_stage_approval"`

	// Relasi
	Members                []Person `json:"members" gorm:"many2many:department_members;"`
	DepartmentHeads        []Person `json:"department_heads" gorm:"many2many:department_heads;"`
	SecondStageAuthorities []Person `json:"second_stage_authorities" gorm:"many2many:department_second_stage_authorities;"`
}
