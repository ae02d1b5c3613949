// This file is a helper for running a throwaway database with testcontainers.
// It is used by the integration tests and by the standalone cmd/testcontainers executable.
// Expects environment variables to be loaded from .env files.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

// Default images when DB_IMAGE is not set
const (
	defaultMariaDBImage  = "mariadb:11"
	defaultPostgresImage = "postgres:17-alpine"
)

type TestContainers struct {
	DBContainer testcontainers.Container
	// Config points at the mapped port of the container
	Config *config.Config
}

func (tc *TestContainers) Terminate(t *testing.T) {
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(context.Background()); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
}

// StartDatabase starts the DB_TYPE database in a container, creates the main and the
// TEST_ databases, and returns a config that connects to it from the host.
func StartDatabase(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	dbType := getEnv("DB_TYPE", "mariadb")
	dbImage := getEnv("DB_IMAGE", defaultImage(dbType))
	if dbImage == "" {
		return nil, fmt.Errorf("no database image for DB_TYPE %s", dbType)
	}

	cached, err := imageExists(ctx, dbImage)
	if err != nil {
		logMessage(t, "Could not inspect local images: %v", err)
	} else if cached {
		logMessage(t, "Image %s exists, reusing...", dbImage)
	} else {
		logMessage(t, "Image %s does not exist, pulling...", dbImage)
	}

	tcpDbPort, err := nat.NewPort("tcp", getEnv("DB_PORT", defaultPort(dbType)))
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          getDBInitEnvMap(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	testContainers.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to get database host: %w", err)
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to get database port: %w", err)
	}

	cfg := &config.Config{
		AppEnv:            "test",
		DBType:            dbType,
		DBHost:            dbHost,
		DBPort:            dbPort.Port(),
		DBDatabase:        getEnv("DB_DATABASE", "bookmarks"),
		DBUser:            getEnv("DB_USER", "bookmarks"),
		DBPassword:        getEnv("DB_PASSWORD", "bookmarks"),
		DBConnectionLimit: 5,
		Secret:            getEnv("SECRET", TestSecret),
		LogLevel:          "error",
	}
	testDatabase := getEnv("TEST_DB_DATABASE", "test_"+cfg.DBDatabase)

	switch dbType {
	case "mysql", "mariadb":
		err = performMySQLDBInit(cfg, testDatabase)
	case "postgres", "postgresql":
		err = performPostgresDBInit(cfg, testDatabase)
	}
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	cfg.DBDatabase = testDatabase
	testContainers.Config = cfg

	logMessage(t, "DB_HOST=%s", dbHost)
	logMessage(t, "DB_PORT=%s", dbPort.Port())
	logMessage(t, "TEST_DB_DATABASE=%s", testDatabase)
	logMessage(t, "Database testcontainer started successfully")
	return testContainers, nil
}

func defaultImage(dbType string) string {
	switch dbType {
	case "mysql", "mariadb":
		return defaultMariaDBImage
	case "postgres", "postgresql":
		return defaultPostgresImage
	}
	return ""
}

func defaultPort(dbType string) string {
	if dbType == "postgres" || dbType == "postgresql" {
		return "5432"
	}
	return "3306"
}

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_PASSWORD": getEnv("DB_PASSWORD", "bookmarks"),
			"POSTGRES_USER":     getEnv("DB_USER", "bookmarks"),
			"POSTGRES_DB":       getEnv("DB_DATABASE", "bookmarks"),
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": getEnv("DB_ROOT_PASSWORD", "root"),
			"MYSQL_DATABASE":      getEnv("DB_DATABASE", "bookmarks"),
			"MYSQL_USER":          getEnv("DB_USER", "bookmarks"),
			"MYSQL_PASSWORD":      getEnv("DB_PASSWORD", "bookmarks"),
		}
	}
}

// performMySQLDBInit creates the test database as root and grants it to the service user
func performMySQLDBInit(cfg *config.Config, testDatabase string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", getEnv("DB_ROOT_PASSWORD", "root"), cfg.DBHost, cfg.DBPort))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", testDatabase),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", testDatabase, cfg.DBUser),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

// performPostgresDBInit creates the test database owned by the service user
func performPostgresDBInit(cfg *config.Config, testDatabase string) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBDatabase, cfg.DBPort)

	var err error
	for i := 0; i < 30; i++ {
		db, openErr := database.Open(postgres.Open(dsn), logger.Discard)
		if openErr == nil {
			defer database.Close(db)

			var exists int64
			if err = db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", testDatabase).Scan(&exists).Error; err != nil {
				return err
			}
			if exists > 0 {
				return nil
			}
			return db.Exec(fmt.Sprintf(`CREATE DATABASE "%s" OWNER "%s"`, testDatabase, cfg.DBUser)).Error
		}
		err = openErr
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("Postgres not ready after 30 seconds: %w", err)
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
