// Command migrate applies or inspects the database schema. Production servers
// never auto-migrate, so deploys run `migrate auto` before starting the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"murmur/internal/config"
	"murmur/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{AutoMigrate: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		status, err := database.SchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		pending := database.Pending(status)
		log.Printf("env=%s tables=%d pending=%d", cfg.Env, len(status), len(pending))
		for _, table := range pending {
			log.Printf("pending: %s", table)
		}
	default:
		return usage()
	}

	return nil
}
