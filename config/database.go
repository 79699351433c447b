package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"leave-backend/internal/model"
)

// ConnectDB opens the MySQL connection and migrates the schema.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate membuat tabel otomatis berdasarkan struct di folder model
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Person{},
		&model.PersonPermission{},
		&model.PersonNotification{},
		&model.Department{},
		&model.Application{},
		&model.ApplicationComment{},
		&model.Settings{},
		&model.SickNote{},
		&model.Account{},
		&model.Overtime{},
		&model.OvertimeComment{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
