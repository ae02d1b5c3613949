// data.go
//
// A bookmarking data service with token authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-bookmarks.
// jam-build-bookmarks is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-bookmarks is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-bookmarks.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package helpers

import (
	"testing"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSecret signs the tokens of TestConfig
const TestSecret = "test-secret"

// TestConfig returns a configuration for in-process tests
func TestConfig() *config.Config {
	return &config.Config{
		Port:              "3000",
		AppEnv:            "test",
		CORSOrigins:       "*",
		Metrics:           false,
		DBType:            "sqlite3",
		DBDatabase:        ":memory:",
		DBConnectionLimit: 1,
		Secret:            TestSecret,
		LogLevel:          "error",
	}
}

// SetupTestDB creates a migrated in-memory database. Every statement shares one
// connection, so concurrent callers queue instead of seeing separate databases.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), logger.Discard)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// CreateTestUser registers a user through the service and returns the stored record
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	view, err := services.CreateUser(db, models.UserInput{
		Username:  username,
		Password:  password,
		FirstName: "test",
		LastName:  username,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	var user models.User
	if err := db.Where("id = ?", view.ID).First(&user).Error; err != nil {
		t.Fatalf("Failed to load user %s: %v", username, err)
	}
	return &user
}

// CreateTestBookmark creates a bookmark owned by owner
func CreateTestBookmark(t *testing.T, db *gorm.DB, owner *models.User, title, url string) *models.Bookmark {
	t.Helper()

	view, err := services.CreateBookmark(db, owner.ID, models.BookmarkInput{
		Title: title,
		URL:   url,
	})
	if err != nil {
		t.Fatalf("Failed to create bookmark %s: %v", title, err)
	}

	var bookmark models.Bookmark
	if err := db.Where("id = ?", view.ID).First(&bookmark).Error; err != nil {
		t.Fatalf("Failed to load bookmark %s: %v", title, err)
	}
	return &bookmark
}

// CountRows counts the rows of model matching the optional where clause
func CountRows(t *testing.T, db *gorm.DB, model interface{}, where ...interface{}) int64 {
	t.Helper()

	query := db.Model(model)
	if len(where) > 0 {
		query = query.Where(where[0], where[1:]...)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("Failed to count %T: %v", model, err)
	}
	return count
}
