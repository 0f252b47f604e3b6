package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/storage"
	"github.com/emberkeep/spritebank/internal/storage/sqlite"
)

func TestApplyPopulatesFreshCatalog(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	summary, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	wantCounts := []struct {
		name  string
		count CategoryCount
		want  int
	}{
		{"characters", summary.Characters, 9},
		{"hero stats", summary.HeroStats, 3},
		{"enemy stats", summary.EnemyStats, 6},
		{"asset packs", summary.AssetPacks, 5},
		{"animations", summary.Animations, 9},
		{"special effects", summary.SpecialEffects, 3},
		{"effect links", summary.EffectLinks, 5},
	}
	for _, wc := range wantCounts {
		if wc.count.Inserted != wc.want || wc.count.Existing != 0 {
			t.Fatalf("%s = %+v, want %d inserted, 0 existing", wc.name, wc.count, wc.want)
		}
	}

	hero, err := store.GetHero(context.Background(), "knight")
	if err != nil {
		t.Fatalf("get knight: %v", err)
	}
	if hero.MaxHealth != 375 || hero.SpecialAbilityName != "Shield Bash" {
		t.Fatalf("knight = %+v, want 375 health and Shield Bash", hero)
	}

	enemy, err := store.GetEnemy(context.Background(), "gorgon_3")
	if err != nil {
		t.Fatalf("get gorgon_3: %v", err)
	}
	if enemy.MaxHealth != 115 || enemy.ExperienceValue != 115 {
		t.Fatalf("gorgon_3 = %+v, want 115 health and 115 xp", enemy)
	}
}

func TestApplySeedsStateDefaultFallbacks(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := Apply(context.Background(), store); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	// The skeleton rows ship without overrides, so resolution falls back
	// to the seeded state defaults.
	resolved, err := store.ResolveAnimation(context.Background(), "skeleton_archer", animation.StateIdle, "skeleton_pack")
	if err != nil {
		t.Fatalf("resolve skeleton idle: %v", err)
	}
	if resolved.FrameRate != 12.0 || !resolved.Loop {
		t.Fatalf("skeleton idle resolved = %v/%v, want 12/loop", resolved.FrameRate, resolved.Loop)
	}
	if resolved.SpriteSheetPath != "assets/sprites/enemies/skeletons/archer_idle.png" {
		t.Fatalf("skeleton idle path = %q, want manifest base path joined", resolved.SpriteSheetPath)
	}

	knight, err := store.ResolveAnimation(context.Background(), "knight", animation.StateAttacking1, "knight_pack")
	if err != nil {
		t.Fatalf("resolve knight attack: %v", err)
	}
	if knight.FrameRate != 20.0 || knight.Loop {
		t.Fatalf("knight attack resolved = %v/%v, want explicit 20/no loop", knight.FrameRate, knight.Loop)
	}
}

func TestApplyLinksTriggeredEffects(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := Apply(context.Background(), store); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	arrows, err := store.ListTriggeredEffects(context.Background(), "archer", animation.StateAttacking2)
	if err != nil {
		t.Fatalf("list archer effects: %v", err)
	}
	if len(arrows) != 1 || arrows[0].EffectName != "arrow" {
		t.Fatalf("archer attacking_2 effects = %+v, want arrow", arrows)
	}

	fireballs, err := store.ListTriggeredEffects(context.Background(), "cleric", animation.StateSpecialSkill)
	if err != nil {
		t.Fatalf("list cleric effects: %v", err)
	}
	if len(fireballs) != 1 || fireballs[0].EffectName != "fireball" {
		t.Fatalf("cleric special effects = %+v, want fireball", fireballs)
	}
}

func TestPlanMatchesFreshApply(t *testing.T) {
	t.Parallel()

	plan, err := Plan()
	if err != nil {
		t.Fatalf("plan seed: %v", err)
	}

	store := openTempStore(t)
	applied, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("apply seed: %v", err)
	}
	if plan != applied {
		t.Fatalf("plan = %+v, want %+v", plan, applied)
	}
	if plan.Inserted() == 0 {
		t.Fatal("plan reported no rows")
	}
}

func TestApplyTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	first, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if second.Inserted() != 0 {
		t.Fatalf("second pass inserted %d rows, want 0", second.Inserted())
	}
	if second.Characters.Existing != first.Characters.Inserted {
		t.Fatalf("characters existing = %d, want %d", second.Characters.Existing, first.Characters.Inserted)
	}
	if second.EffectLinks.Existing != first.EffectLinks.Inserted {
		t.Fatalf("effect links existing = %d, want %d", second.EffectLinks.Existing, first.EffectLinks.Inserted)
	}

	stats, err := store.GetCatalogStatistics(context.Background())
	if err != nil {
		t.Fatalf("get catalog statistics: %v", err)
	}
	if stats.Characters != 9 || stats.CharacterAnimations != 9 || stats.CharacterEffects != 5 {
		t.Fatalf("stats = %+v, want 9 characters, 9 animations, 5 links", stats)
	}
}

func TestApplyKeepsOperatorEdits(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := Apply(context.Background(), store); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	edited := storage.AssetPack{
		ID:       "knight_pack",
		Name:     "Knight Assets",
		Author:   "GameArtStudio",
		Version:  "2.0-custom",
		License:  "CC-BY-4.0",
		BasePath: "assets/custom/knight",
	}
	if err := store.PutAssetPack(context.Background(), edited); err != nil {
		t.Fatalf("edit pack: %v", err)
	}

	if _, err := Apply(context.Background(), store); err != nil {
		t.Fatalf("re-apply seed: %v", err)
	}

	got, err := store.GetAssetPack(context.Background(), "knight_pack")
	if err != nil {
		t.Fatalf("get pack: %v", err)
	}
	if got.Version != "2.0-custom" || got.BasePath != "assets/custom/knight" {
		t.Fatalf("pack = %+v, want operator edits kept", got)
	}
}

func openTempStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
