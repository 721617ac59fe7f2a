package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "List pending migrations without applying them")
	list := flag.Bool("list", false, "Print the embedded migrations and exit")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall migration timeout")
	flag.Parse()

	if *list {
		migrations, err := postgres.Migrations()
		if err != nil {
			log.Fatalf("Failed to read migrations: %v", err)
		}
		for _, m := range migrations {
			fmt.Println(m.Version)
		}
		return
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *dryRun {
		logger.Info("Dry run mode - listing pending migrations without applying them")
	} else {
		logger.Info("Running database migrations...")
	}

	if err := db.Migrate(ctx, *dryRun); err != nil {
		logger.Fatalw("Migration failed", "error", err)
	}

	logger.Info("Migration completed successfully")
}
