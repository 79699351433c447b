//go:build integration

package containers

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"leave-backend/config"
)

// MySQLContainer wraps a testcontainers MySQL instance with a migrated schema.
type MySQLContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *gorm.DB
}

// NewMySQLContainer starts MySQL and runs the schema migration. The
// container is terminated when t finishes.
func NewMySQLContainer(t *testing.T) *MySQLContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("leave_test"),
		tcmysql.WithUsername("leave"),
		tcmysql.WithPassword("leave"),
	)
	if err != nil {
		t.Fatalf("failed to start mysql container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=UTC")
	if err != nil {
		t.Fatalf("failed to get mysql connection string: %v", err)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open mysql: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &MySQLContainer{Container: container, DSN: dsn, DB: db}
}

// Tables lists every migrated table, join tables included.
var Tables = []string{
	"application_comments", "applications",
	"department_members", "department_heads", "department_second_stage_authorities", "departments",
	"person_permissions", "person_notifications", "people",
	"overtime_comments", "overtimes", "sick_notes", "accounts", "settings",
}

// TruncateTables empties the given tables.
// Use between tests to ensure isolation.
func (m *MySQLContainer) TruncateTables(tables ...string) error {
	return m.DB.Connection(func(tx *gorm.DB) error {
		if err := tx.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
			return err
		}
		defer tx.Exec("SET FOREIGN_KEY_CHECKS = 1")
		for _, table := range tables {
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", table)).Error; err != nil {
				return fmt.Errorf("truncate %s: %w", table, err)
			}
		}
		return nil
	})
}
