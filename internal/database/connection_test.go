package database

import (
	"context"
	"testing"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	applog "github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"gorm.io/gorm/logger"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        ":memory:",
		DBConnectionLimit: 5,
		LogLevel:          "silent",
	}

	db, err := Connect(cfg, applog.Nop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	for _, model := range []interface{}{&models.User{}, &models.Bookmark{}, &models.BookmarkLike{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}

	if err := Ping(context.Background(), db); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	sqlDB, _ := db.DB()
	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1 for sqlite", got)
	}
}

func TestDialector(t *testing.T) {
	tests := []struct {
		dbType  string
		name    string
		wantErr bool
	}{
		{dbType: "mysql", name: "mysql"},
		{dbType: "mariadb", name: "mysql"},
		{dbType: "postgres", name: "postgres"},
		{dbType: "sqlite", name: "sqlite"},
		{dbType: "sqlite3", name: "sqlite"},
		{dbType: "sqlserver", name: "sqlserver"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			cfg := &config.Config{
				DBType:     tt.dbType,
				DBHost:     "localhost",
				DBPort:     "3306",
				DBDatabase: "bookmarks",
				DBUser:     "user",
				DBPassword: "password",
			}

			dialector, err := Dialector(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dialector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := dialector.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":  logger.Info,
		"info":   logger.Warn,
		"":       logger.Warn,
		"error":  logger.Error,
		"silent": logger.Silent,
		"bogus":  logger.Warn,
	}

	for level, want := range tests {
		if got := GormLogLevel(level); got != want {
			t.Errorf("GormLogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN(":memory:", "_busy_timeout=5000"); got != ":memory:" {
		t.Errorf("sqliteDSN(:memory:) = %q", got)
	}
	if got := sqliteDSN("bookmarks.db", "_busy_timeout=5000"); got != "bookmarks.db?_busy_timeout=5000" {
		t.Errorf("sqliteDSN(bookmarks.db) = %q", got)
	}
}
