// Package packimport parses pack-importer command flags and loads external
// asset-pack manifests into the catalog.
package packimport

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emberkeep/spritebank/internal/packs"
	entrypoint "github.com/emberkeep/spritebank/internal/platform/cmd"
	"github.com/emberkeep/spritebank/internal/platform/id"
	"github.com/emberkeep/spritebank/internal/storage"
	"github.com/emberkeep/spritebank/internal/storage/sqlite"
)

// Config holds pack-importer command configuration.
type Config struct {
	DBPath   string `env:"SPRITEBANK_DB_PATH" envDefault:"spritebank.db"`
	Manifest string
	Dir      string
	Source   string `env:"SPRITEBANK_IMPORT_SOURCE"`
	DryRun   bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the catalog sqlite database")
	fs.StringVar(&cfg.Manifest, "manifest", "", "path to a single pack manifest file")
	fs.StringVar(&cfg.Dir, "dir", "", "directory containing pack manifest *.json files")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "source label recorded in the import log (default: the manifest path)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate manifests without writing catalog rows")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Manifest == "" && cfg.Dir == "" {
		return Config{}, errors.New("-manifest or -dir is required")
	}
	if cfg.Manifest != "" && cfg.Dir != "" {
		return Config{}, errors.New("-manifest cannot be combined with -dir")
	}
	return cfg, nil
}

// Store is the catalog surface the importer writes through.
type Store interface {
	storage.CharacterStore
	storage.PackStore
	storage.AnimationStore
	storage.EffectStore
	storage.ImportLogStore
}

type manifestFile struct {
	path     string
	manifest packs.Manifest
}

type importCounts struct {
	packs      int
	animations int
	effects    int
	links      int
}

// Run imports every referenced manifest. All manifests are validated and
// their character references resolved before the first catalog write; a
// dry run validates and records an import_runs row only.
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

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceImporter, func(ctx context.Context) error {
		startedAt := time.Now().UTC()

		files, err := loadManifests(cfg)
		if err != nil {
			return err
		}
		if err := checkManifestOverlap(files); err != nil {
			return err
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

		if err := checkCharacters(ctx, store, files); err != nil {
			return err
		}

		var counts importCounts
		if !cfg.DryRun {
			for _, file := range files {
				if err := importManifest(ctx, store, file, &counts); err != nil {
					return err
				}
			}
		}

		runID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("generate run id: %w", err)
		}
		run := storage.ImportRun{
			ID:                 runID,
			Source:             sourceLabel(cfg),
			StartedAt:          startedAt,
			FinishedAt:         time.Now().UTC(),
			PacksImported:      counts.packs,
			AnimationsImported: counts.animations,
			EffectsImported:    counts.effects,
			DryRun:             cfg.DryRun,
		}
		if err := store.AppendImportRun(ctx, run); err != nil {
			return fmt.Errorf("record import run: %w", err)
		}

		if cfg.DryRun {
			fmt.Fprintf(out, "dry run: validated %d pack(s) across %d manifest(s); no catalog rows written\n",
				countPacks(files), len(files))
			return nil
		}
		fmt.Fprintf(out, "imported %d pack(s), %d animation(s), %d effect(s), %d trigger link(s) into %s\n",
			counts.packs, counts.animations, counts.effects, counts.links, cfg.DBPath)
		return nil
	})
}

func loadManifests(cfg Config) ([]manifestFile, error) {
	paths, err := manifestPaths(cfg)
	if err != nil {
		return nil, err
	}
	files := make([]manifestFile, 0, len(paths))
	for _, path := range paths {
		manifest, err := packs.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		files = append(files, manifestFile{path: path, manifest: manifest})
	}
	return files, nil
}

func manifestPaths(cfg Config) ([]string, error) {
	if cfg.Manifest != "" {
		return []string{cfg.Manifest}, nil
	}
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(cfg.Dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifest files in %s", cfg.Dir)
	}
	return paths, nil
}

// checkManifestOverlap rejects pack ids or effect names defined by more
// than one manifest file, which would make the import order-dependent.
func checkManifestOverlap(files []manifestFile) error {
	packSources := make(map[string]string)
	effectSources := make(map[string]string)
	for _, file := range files {
		for _, pack := range file.manifest.Packs {
			if first, ok := packSources[pack.ID]; ok {
				return fmt.Errorf("pack %q defined in both %s and %s", pack.ID, first, file.path)
			}
			packSources[pack.ID] = file.path
			for _, effect := range pack.Effects {
				if first, ok := effectSources[effect.Name]; ok {
					return fmt.Errorf("effect %q defined in both %s and %s", effect.Name, first, file.path)
				}
				effectSources[effect.Name] = file.path
			}
		}
	}
	return nil
}

func checkCharacters(ctx context.Context, store Store, files []manifestFile) error {
	var missing []string
	seen := make(map[string]bool)
	for _, file := range files {
		for _, characterID := range file.manifest.CharacterIDs() {
			if seen[characterID] {
				continue
			}
			seen[characterID] = true
			_, err := store.GetCharacter(ctx, characterID)
			if errors.Is(err, storage.ErrNotFound) {
				missing = append(missing, characterID)
				continue
			}
			if err != nil {
				return fmt.Errorf("check character %s: %w", characterID, err)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("manifests reference unknown characters: %s", strings.Join(missing, ", "))
	}
	return nil
}

func importManifest(ctx context.Context, store Store, file manifestFile, counts *importCounts) error {
	for _, pack := range file.manifest.Packs {
		if err := store.PutAssetPack(ctx, storage.AssetPack{
			ID:       pack.ID,
			Name:     pack.Name,
			Author:   pack.Author,
			Version:  pack.Version,
			License:  pack.License,
			BasePath: pack.BasePath,
		}); err != nil {
			return fmt.Errorf("import pack %s: %w", pack.ID, err)
		}
		counts.packs++

		for _, anim := range pack.Animations {
			if err := store.UpsertCharacterAnimation(ctx, storage.CharacterAnimation{
				CharacterID:     anim.CharacterID,
				State:           anim.State,
				PackID:          pack.ID,
				SpriteSheetName: anim.SpriteSheetName,
				FrameCount:      anim.FrameCount,
				FrameWidth:      anim.FrameWidth,
				FrameHeight:     anim.FrameHeight,
				FrameRate:       anim.FrameRate,
				Loop:            anim.Loop,
			}); err != nil {
				return fmt.Errorf("import animation %s/%s: %w", anim.CharacterID, anim.State, err)
			}
			counts.animations++
		}

		for _, effect := range pack.Effects {
			effectID, err := store.UpsertSpecialEffect(ctx, storage.SpecialEffect{
				Name:            effect.Name,
				PackID:          pack.ID,
				SpriteSheetName: effect.SpriteSheetName,
				FrameCount:      effect.FrameCount,
				FrameWidth:      effect.FrameWidth,
				FrameHeight:     effect.FrameHeight,
				FrameRate:       effect.FrameRate,
			})
			if err != nil {
				return fmt.Errorf("import effect %s: %w", effect.Name, err)
			}
			counts.effects++

			for _, trigger := range effect.Triggers {
				err := store.LinkCharacterEffect(ctx, storage.CharacterEffect{
					CharacterID:  trigger.CharacterID,
					EffectID:     effectID,
					TriggerState: trigger.State,
					OffsetX:      trigger.OffsetX,
					OffsetY:      trigger.OffsetY,
				})
				if errors.Is(err, storage.ErrAlreadyExists) {
					continue
				}
				if err != nil {
					return fmt.Errorf("link effect %s to %s/%s: %w", effect.Name, trigger.CharacterID, trigger.State, err)
				}
				counts.links++
			}
		}
	}
	return nil
}

func sourceLabel(cfg Config) string {
	if source := strings.TrimSpace(cfg.Source); source != "" {
		return source
	}
	if cfg.Manifest != "" {
		return cfg.Manifest
	}
	return cfg.Dir
}

func countPacks(files []manifestFile) int {
	total := 0
	for _, file := range files {
		total += len(file.manifest.Packs)
	}
	return total
}
