// Package migrate parses migrate command flags and prepares the catalog schema.
package migrate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/emberkeep/spritebank/internal/platform/cmd"
	"github.com/emberkeep/spritebank/internal/storage/sqlite"
)

// Config holds migrate command configuration.
type Config struct {
	DBPath string `env:"SPRITEBANK_DB_PATH" envDefault:"spritebank.db"`
	Status bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the catalog sqlite database")
	fs.BoolVar(&cfg.Status, "status", false, "print the migration ledger without applying pending migrations")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run applies pending catalog migrations, or reports the ledger when
// cfg.Status is set.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("-db path is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMigrate, func(context.Context) error {
		if cfg.Status {
			return printLedger(cfg.DBPath, out)
		}
		return applyMigrations(cfg.DBPath, out, errOut)
	})
}

func applyMigrations(path string, out, errOut io.Writer) error {
	store, err := sqlite.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(errOut, "Error: close catalog store: %v\n", err)
		}
	}()

	applied, err := store.AppliedMigrations()
	if err != nil {
		return fmt.Errorf("read migration ledger: %w", err)
	}
	fmt.Fprintf(out, "catalog schema ready: %d migration(s) applied to %s\n", len(applied), path)
	return nil
}

func printLedger(path string, out io.Writer) error {
	applied, err := sqlite.ReadMigrationLedger(path)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintf(out, "no migrations applied to %s\n", path)
		return nil
	}
	for _, migration := range applied {
		fmt.Fprintf(out, "%s\t%s\n", migration.Name, migration.AppliedAt.UTC().Format(time.RFC3339))
	}
	return nil
}
