// Command migrate manages the schema of the sqlite session store.
//
//	migrate up          apply all pending migrations
//	migrate down [N]    roll back N migrations (default 1)
//	migrate version     print the current schema version
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/logging"
	"github.com/Rrens/crop-advisory/internal/repository/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if _, err := logging.Setup(cfg.Logging, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	log.Info().Str("path", cfg.SQLite.Path).Msg("Opening session database")
	db, err := sqlite.Open(context.Background(), cfg.SQLite)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	switch cmd {
	case "up":
		if err := sqlite.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil || steps < 1 {
				log.Fatal().Str("steps", os.Args[2]).Msg("down expects a positive step count")
			}
		}
		if err := sqlite.RollbackMigrations(db, steps); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
	case "version":
	default:
		fmt.Fprintf(os.Stderr, "usage: migrate [up | down [N] | version]\n")
		os.Exit(2)
	}

	version, dirty, err := sqlite.SchemaVersion(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read schema version")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
	fmt.Println(version)
}
