// Package seed parses seed command flags and installs the reference
// catalog content.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/emberkeep/spritebank/internal/platform/cmd"
	"github.com/emberkeep/spritebank/internal/seed"
	"github.com/emberkeep/spritebank/internal/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"SPRITEBANK_DB_PATH" envDefault:"spritebank.db"`
	DryRun bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the catalog sqlite database")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "print planned fixture counts without writing")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the catalog with the reference characters, packs, and effects.
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

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		if cfg.DryRun {
			plan, err := seed.Plan()
			if err != nil {
				return fmt.Errorf("load reference content: %w", err)
			}
			fmt.Fprintf(out, "dry run: %d row(s) would be installed into an empty catalog\n", plan.Inserted())
			printSummary(out, plan)
			return nil
		}

		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("-db path is required")
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(errOut, "Error: close catalog store: %v\n", err)
			}
		}()

		summary, err := seed.Apply(ctx, store)
		if err != nil {
			return fmt.Errorf("apply reference content: %w", err)
		}
		printSummary(out, summary)
		fmt.Fprintf(out, "seeded %d row(s) into %s\n", summary.Inserted(), cfg.DBPath)
		return nil
	})
}

func printSummary(out io.Writer, summary seed.Summary) {
	categories := []struct {
		label string
		count seed.CategoryCount
	}{
		{"characters", summary.Characters},
		{"hero stats", summary.HeroStats},
		{"enemy stats", summary.EnemyStats},
		{"asset packs", summary.AssetPacks},
		{"animations", summary.Animations},
		{"special effects", summary.SpecialEffects},
		{"effect links", summary.EffectLinks},
	}
	for _, category := range categories {
		fmt.Fprintf(out, "%s: %d inserted, %d existing\n", category.label, category.count.Inserted, category.count.Existing)
	}
}
