// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/db"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.Open(config.DBConfig{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "barbershop.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	conn.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
