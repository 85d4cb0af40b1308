// Package dbtest opens throwaway SQLite databases for repository tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"todo-backend/pkg/config"
	"todo-backend/pkg/database"

	"gorm.io/gorm"
)

// Open returns a migrated database backed by a file in t.TempDir.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := database.NewConnection(&config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel:  "silent",
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate test database: %v", err)
		}
	}
	return db
}
