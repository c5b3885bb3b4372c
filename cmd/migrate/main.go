package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/retailops/backoffice/internal/infrastructure/config"
	"github.com/retailops/backoffice/internal/infrastructure/logger"
	"github.com/retailops/backoffice/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Usage: migrate [flags] <command>

Commands:
  up              Apply all pending migrations
  down            Roll back the most recent migration
  step <n>        Apply n migrations (negative rolls back)
  version         Print the current schema version
  force <v>       Force the schema version without running migrations

Flags:
  -path string    Migrations directory (default "migrations")
`

func main() {
	var (
		path     = flag.String("path", "migrations", "migrations directory")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:  *logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := run(migrator, log, flag.Args()); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}

func run(migrator *migration.Migrator, log *zap.Logger, args []string) error {
	switch cmd := args[0]; cmd {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "step":
		if len(args) < 2 {
			return fmt.Errorf("step requires a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[1], err)
		}
		return migrator.Steps(n)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		return migrator.Force(v)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
