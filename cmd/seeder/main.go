// Command seeder imports the CELEX lexicon into PostgreSQL.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        parse the lexicon without writing to DB
//	--replace        delete existing CELEX rows before importing
//	--migrate        apply database migrations first
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/lettergreep/internal/adapter/postgres"
	"github.com/heartmarshall/lettergreep/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lettergreep/internal/app"
	"github.com/heartmarshall/lettergreep/internal/app/seeder"
	"github.com/heartmarshall/lettergreep/internal/config"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the lexicon without writing to DB")
	replaceFlag := flag.Bool("replace", false, "delete existing CELEX rows before importing")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations first")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	if appCfg.Database.DSN == "" {
		log.Fatal("database.dsn (DATABASE_DSN) is required")
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *replaceFlag {
		seederCfg.Replace = true
	}
	if seederCfg.CELEXPath == "" {
		seederCfg.CELEXPath = appCfg.Lexicon.CELEXPath
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *migrateFlag || appCfg.Database.MigrateOnStart {
		applied, err := postgres.Migrate(ctx, appCfg.Database.DSN)
		if err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, lexicon.New(pool), postgres.NewTxManager(pool), *seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
