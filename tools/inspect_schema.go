//go:build ignore

// Prints the tables and columns AutoMigrate creates for the configured DB_TYPE.
// Usage: go run tools/inspect_schema.go (defaults to an in-memory sqlite database)
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
)

func main() {
	if os.Getenv("DB_DATABASE") == "" {
		os.Setenv("DB_DATABASE", ":memory:")
	}
	if os.Getenv("SECRET") == "" {
		os.Setenv("SECRET", "inspect")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg, logger.New(cfg.LogLevel, true))
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		log.Fatal(err)
	}

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			log.Fatal(err)
		}
		for _, column := range columns {
			nullable, _ := column.Nullable()
			primary, _ := column.PrimaryKey()
			fmt.Printf("%-14s %-16s nullable=%-5v primary=%v\n", column.Name(), column.DatabaseTypeName(), nullable, primary)
		}
	}
}
