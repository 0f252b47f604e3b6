package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/domain/character"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
	if _, err := Open("   "); err == nil {
		t.Fatal("expected blank path error")
	}
}

func TestOpenSeedsLookupTables(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	types, err := store.ListCharacterTypes(context.Background())
	if err != nil {
		t.Fatalf("list character types: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("character types len = %d, want 2", len(types))
	}
	if types[0].Role != character.RoleEnemy || types[0].DisplayName != "Enemy" {
		t.Fatalf("first type = %+v, want enemy/Enemy", types[0])
	}
	if types[1].Role != character.RoleHero || types[1].DisplayName != "Hero" {
		t.Fatalf("second type = %+v, want hero/Hero", types[1])
	}

	states, err := store.ListAnimationStates(context.Background())
	if err != nil {
		t.Fatalf("list animation states: %v", err)
	}
	if len(states) != animation.StateCount {
		t.Fatalf("animation states len = %d, want %d", len(states), animation.StateCount)
	}
	for i, state := range states {
		if state.State != animation.State(i) {
			t.Fatalf("state %d id = %d, want %d", i, int(state.State), i)
		}
		if state.Name != animation.State(i).String() {
			t.Fatalf("state %d name = %q, want %q", i, state.Name, animation.State(i))
		}
	}
}

func TestGetAnimationStateReturnsSeededDefaults(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	idle, err := store.GetAnimationState(context.Background(), animation.StateIdle)
	if err != nil {
		t.Fatalf("get idle state: %v", err)
	}
	if idle.DefaultFrameRate != 12.0 || !idle.DefaultLoop {
		t.Fatalf("idle defaults = %v/%v, want 12/loop", idle.DefaultFrameRate, idle.DefaultLoop)
	}

	dying, err := store.GetAnimationState(context.Background(), animation.StateDying)
	if err != nil {
		t.Fatalf("get dying state: %v", err)
	}
	if dying.DefaultFrameRate != 10.0 || dying.DefaultLoop {
		t.Fatalf("dying defaults = %v/%v, want 10/no loop", dying.DefaultFrameRate, dying.DefaultLoop)
	}

	if _, err := store.GetAnimationState(context.Background(), animation.State(99)); err == nil {
		t.Fatal("expected invalid state error")
	}
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close first store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	types, err := second.ListCharacterTypes(context.Background())
	if err != nil {
		t.Fatalf("list character types: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("character types len = %d, want 2", len(types))
	}
	states, err := second.ListAnimationStates(context.Background())
	if err != nil {
		t.Fatalf("list animation states: %v", err)
	}
	if len(states) != animation.StateCount {
		t.Fatalf("animation states len = %d, want %d", len(states), animation.StateCount)
	}
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	var enabled int
	if err := store.sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("read foreign key pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d, want 1", enabled)
	}
}

func TestMigrationsReplaceLegacyTables(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	for _, table := range []string{"hero_animations", "enemy_animations", "hero_sprites", "enemy_sprites"} {
		if tableExists(t, store, table) {
			t.Fatalf("legacy table %s still present after migrations", table)
		}
	}
	for _, table := range []string{
		"character_types", "character_stats", "hero_stats", "enemy_stats",
		"asset_packs", "animation_states", "character_animations",
		"special_effects", "character_effects", "import_runs",
	} {
		if !tableExists(t, store, table) {
			t.Fatalf("expected table %s after migrations", table)
		}
	}

	var legacyKey int
	err := store.sqlDB.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('hero_stats') WHERE name = 'hero_type'",
	).Scan(&legacyKey)
	if err != nil {
		t.Fatalf("inspect hero_stats columns: %v", err)
	}
	if legacyKey != 0 {
		t.Fatal("hero_stats still has the legacy hero_type column")
	}

	var views int
	err = store.sqlDB.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'view' AND name = 'character_animation_resolved'",
	).Scan(&views)
	if err != nil {
		t.Fatalf("inspect views: %v", err)
	}
	if views != 1 {
		t.Fatal("expected character_animation_resolved view")
	}
}

func TestAppliedMigrationsListsLedger(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)

	applied, err := store.AppliedMigrations()
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	want := []string{
		"001_legacy_schema.sql",
		"002_character_catalog.sql",
		"003_import_runs.sql",
	}
	if len(applied) != len(want) {
		t.Fatalf("applied len = %d, want %d", len(applied), len(want))
	}
	for i, name := range want {
		if applied[i].Name != name {
			t.Fatalf("applied[%d] = %q, want %q", i, applied[i].Name, name)
		}
		if applied[i].AppliedAt.IsZero() {
			t.Fatalf("applied[%d] has zero timestamp", i)
		}
	}
}

func TestReadMigrationLedgerRequiresExistingDatabase(t *testing.T) {
	t.Parallel()

	if _, err := ReadMigrationLedger(""); err == nil {
		t.Fatal("expected empty path error")
	}

	missing := filepath.Join(t.TempDir(), "absent.db")
	if _, err := ReadMigrationLedger(missing); err == nil {
		t.Fatal("expected missing file error")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatal("status check must not create the database file")
	}
}

func TestReadMigrationLedgerMatchesAppliedMigrations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	fromStore, err := store.AppliedMigrations()
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	ledger, err := ReadMigrationLedger(path)
	if err != nil {
		t.Fatalf("read migration ledger: %v", err)
	}
	if len(ledger) != len(fromStore) {
		t.Fatalf("ledger len = %d, want %d", len(ledger), len(fromStore))
	}
	for i := range ledger {
		if ledger[i] != fromStore[i] {
			t.Fatalf("ledger[%d] = %+v, want %+v", i, ledger[i], fromStore[i])
		}
	}
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.ListCharacterTypes(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := store.GetCharacter(ctx, "knight"); err == nil {
		t.Fatal("expected context error")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
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

func tableExists(t *testing.T, store *Store, name string) bool {
	t.Helper()

	var count int
	err := store.sqlDB.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("inspect table %s: %v", name, err)
	}
	return count > 0
}
