package repository

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewSQLiteDB(dataDir string) (*gorm.DB, error) {
	// A bare ":memory:" DSN gives every pooled connection its own
	// database; a named shared-cache DB keeps the pool coherent.
	dsn := fmt.Sprintf("file:mem-%s?mode=memory&cache=shared", uuid.NewString())
	if dataDir != "" {
		dsn = filepath.Join(dataDir, "prompthost.db")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&Project{}, &Commit{}, &Document{}, &User{},
		&DeploymentTest{}, &Run{},
	); err != nil {
		return nil, err
	}
	// Backstop for the check-then-act guard: at most one active,
	// non-deleted test per (project, type).
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_active_deployment_test
		 ON deployment_tests (project_id, test_type)
		 WHERE status IN ('pending', 'running', 'paused') AND deleted_at IS NULL`,
	).Error; err != nil {
		return nil, err
	}
	return db, nil
}
