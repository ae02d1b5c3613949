package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Schema       string            `json:"schema,omitempty"`
	Server       string            `json:"server,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database and, when serverURL is set, the HTTP listener
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, serverURL string) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, db); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		checkSchema(db.WithContext(ctx), &result)
	}

	if serverURL == "" {
		return result
	}

	if err := utils.PingService(serverURL, 1500*time.Millisecond); err != nil {
		result.Status = "unhealthy"
		result.Server = "unreachable"
		result.Details["server_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Server ping failed: %v", err)
		}
	} else {
		result.Server = "ok"
	}

	return result
}

// checkSchema reports tables the service needs that have not been migrated
func checkSchema(db *gorm.DB, result *HealthCheckResult) {
	var missing []string
	migrator := db.Migrator()
	for _, model := range []schema.Tabler{models.User{}, models.Bookmark{}, models.BookmarkLike{}} {
		if !migrator.HasTable(model.TableName()) {
			missing = append(missing, model.TableName())
		}
	}

	if len(missing) == 0 {
		result.Schema = "ok"
		return
	}
	result.Status = "unhealthy"
	result.Schema = "incomplete"
	result.Details["missing_tables"] = strings.Join(missing, ",")
	result.ErrorMessage = fmt.Sprintf("Missing tables: %s", strings.Join(missing, ", "))
}
