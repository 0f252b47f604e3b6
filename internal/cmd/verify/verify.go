// Package verify parses verify command flags and runs catalog integrity
// checks.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/emberkeep/spritebank/internal/platform/cmd"
	"github.com/emberkeep/spritebank/internal/storage"
	"github.com/emberkeep/spritebank/internal/storage/sqlite"
)

// Config holds verify command configuration.
type Config struct {
	DBPath     string        `env:"SPRITEBANK_DB_PATH" envDefault:"spritebank.db"`
	Timeout    time.Duration `env:"SPRITEBANK_VERIFY_TIMEOUT" envDefault:"10m"`
	JSONOutput bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the catalog sqlite database")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall verification timeout")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "print the integrity report as JSON")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run checks catalog integrity and reports findings. It returns an error
// when the catalog fails verification so callers exit non-zero.
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

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceVerify, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(errOut, "Error: close catalog store: %v\n", err)
			}
		}()

		report, err := store.CheckIntegrity(ctx)
		if err != nil {
			return fmt.Errorf("check integrity: %w", err)
		}
		stats, err := store.GetCatalogStatistics(ctx)
		if err != nil {
			return fmt.Errorf("read catalog statistics: %w", err)
		}

		if cfg.JSONOutput {
			payload, err := json.Marshal(report)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(out, string(payload))
		} else {
			printReport(out, errOut, report, stats)
		}
		if !report.Healthy() {
			return fmt.Errorf("catalog verification failed: %d issue(s)", len(report.Issues))
		}
		return nil
	})
}

func printReport(out, errOut io.Writer, report storage.IntegrityReport, stats storage.CatalogStatistics) {
	fmt.Fprintf(out, "catalog: %d characters (%d heroes, %d enemies), %d asset packs, %d animations, %d special effects, %d effect links\n",
		stats.Characters, stats.Heroes, stats.Enemies, stats.AssetPacks,
		stats.CharacterAnimations, stats.SpecialEffects, stats.CharacterEffects)
	if report.Healthy() {
		fmt.Fprintln(out, "integrity: ok")
		return
	}
	fmt.Fprintf(errOut, "integrity: %d issue(s)\n", len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Fprintf(errOut, "  %s: %s\n", issue.Check, issue.Detail)
	}
}
