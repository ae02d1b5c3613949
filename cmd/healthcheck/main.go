// main.go
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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"github.com/localnerve/jam-build-bookmarks/internal/utils"
)

func main() {
	var dbOnly bool
	flag.BoolVar(&dbOnly, "db-only", false, "skip the HTTP listener check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr, stdout carries only the JSON result
	probeLog := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer probeLog.Sync()

	db, err := database.Connect(cfg, probeLog)
	if err != nil {
		probeLog.Fatalf("Failed to connect to %s database: %v", cfg.DBType, err)
	}

	serverURL := utils.LocalURL(cfg.Port)
	if dbOnly {
		serverURL = ""
	}
	result := services.HealthCheck(context.Background(), cfg, db, serverURL)
	_ = database.Close(db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		probeLog.Fatalf("Failed to marshal health check result: %v", err)
	}
	fmt.Println(string(output))

	if !result.Healthy() {
		probeLog.Infof("bookmarks service unhealthy: %s", result.ErrorMessage)
		_ = probeLog.Sync()
		os.Exit(1)
	}
}
