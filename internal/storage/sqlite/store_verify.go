package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/domain/character"
	"github.com/emberkeep/spritebank/internal/storage"
)

// integrityScan is a named query whose rows are violation details. A
// healthy catalog produces no rows for any scan.
type integrityScan struct {
	check string
	query string
}

var integrityScans = []integrityScan{
	{
		check: "role_exclusivity",
		query: `SELECT 'character ' || h.character_id || ' has both hero and enemy extensions'
			FROM hero_stats h JOIN enemy_stats e ON e.character_id = h.character_id`,
	},
	{
		check: "hero_extension_role",
		query: `SELECT 'hero_stats row ' || h.character_id || ' belongs to a ' || c.type_id
			FROM hero_stats h JOIN character_stats c ON c.character_id = h.character_id
			WHERE c.type_id <> 'hero'`,
	},
	{
		check: "enemy_extension_role",
		query: `SELECT 'enemy_stats row ' || e.character_id || ' belongs to a ' || c.type_id
			FROM enemy_stats e JOIN character_stats c ON c.character_id = e.character_id
			WHERE c.type_id <> 'enemy'`,
	},
	{
		check: "hero_extension_coverage",
		query: `SELECT 'hero ' || c.character_id || ' has no hero_stats row'
			FROM character_stats c LEFT JOIN hero_stats h ON h.character_id = c.character_id
			WHERE c.type_id = 'hero' AND h.character_id IS NULL`,
	},
	{
		check: "enemy_extension_coverage",
		query: `SELECT 'enemy ' || c.character_id || ' has no enemy_stats row'
			FROM character_stats c LEFT JOIN enemy_stats e ON e.character_id = c.character_id
			WHERE c.type_id = 'enemy' AND e.character_id IS NULL`,
	},
	{
		check: "character_role_reference",
		query: `SELECT 'character ' || c.character_id || ' references unknown role ' || c.type_id
			FROM character_stats c LEFT JOIN character_types t ON t.type_id = c.type_id
			WHERE t.type_id IS NULL`,
	},
	{
		check: "animation_character_reference",
		query: `SELECT 'animation ' || a.animation_id || ' references unknown character ' || a.character_id
			FROM character_animations a LEFT JOIN character_stats c ON c.character_id = a.character_id
			WHERE c.character_id IS NULL`,
	},
	{
		check: "animation_state_reference",
		query: `SELECT 'animation ' || a.animation_id || ' references unknown state ' || a.state_id
			FROM character_animations a LEFT JOIN animation_states st ON st.state_id = a.state_id
			WHERE st.state_id IS NULL`,
	},
	{
		check: "animation_pack_reference",
		query: `SELECT 'animation ' || a.animation_id || ' references unknown pack ' || a.pack_id
			FROM character_animations a LEFT JOIN asset_packs p ON p.pack_id = a.pack_id
			WHERE p.pack_id IS NULL`,
	},
	{
		check: "effect_pack_reference",
		query: `SELECT 'effect ' || se.effect_name || ' references unknown pack ' || se.pack_id
			FROM special_effects se LEFT JOIN asset_packs p ON p.pack_id = se.pack_id
			WHERE p.pack_id IS NULL`,
	},
	{
		check: "effect_link_character_reference",
		query: `SELECT 'effect link for ' || ce.character_id || ' references unknown character'
			FROM character_effects ce LEFT JOIN character_stats c ON c.character_id = ce.character_id
			WHERE c.character_id IS NULL`,
	},
	{
		check: "effect_link_effect_reference",
		query: `SELECT 'effect link for ' || ce.character_id || ' references unknown effect ' || ce.effect_id
			FROM character_effects ce LEFT JOIN special_effects se ON se.effect_id = ce.effect_id
			WHERE se.effect_id IS NULL`,
	},
	{
		check: "effect_link_state_reference",
		query: `SELECT 'effect link for ' || ce.character_id || ' references unknown state ' || ce.trigger_state_id
			FROM character_effects ce LEFT JOIN animation_states st ON st.state_id = ce.trigger_state_id
			WHERE st.state_id IS NULL`,
	},
}

// CheckIntegrity runs every catalog invariant check and reports the
// violations it finds. An empty report means the catalog is healthy.
func (s *Store) CheckIntegrity(ctx context.Context) (storage.IntegrityReport, error) {
	if err := ctx.Err(); err != nil {
		return storage.IntegrityReport{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.IntegrityReport{}, fmt.Errorf("storage is not configured")
	}
	report := storage.IntegrityReport{CheckedAt: time.Now().UTC()}

	issues, err := s.checkAnimationStateCensus(ctx)
	if err != nil {
		return storage.IntegrityReport{}, err
	}
	report.Issues = append(report.Issues, issues...)

	issues, err = s.checkCharacterTypeCensus(ctx)
	if err != nil {
		return storage.IntegrityReport{}, err
	}
	report.Issues = append(report.Issues, issues...)

	for _, scan := range integrityScans {
		issues, err := s.runIntegrityScan(ctx, scan)
		if err != nil {
			return storage.IntegrityReport{}, err
		}
		report.Issues = append(report.Issues, issues...)
	}

	issues, err = s.checkForeignKeys(ctx)
	if err != nil {
		return storage.IntegrityReport{}, err
	}
	report.Issues = append(report.Issues, issues...)

	return report, nil
}

// checkAnimationStateCensus verifies the seeded state vocabulary is
// complete: one row per state id with the expected name.
func (s *Store) checkAnimationStateCensus(ctx context.Context) ([]storage.IntegrityIssue, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT state_id, state_name FROM animation_states ORDER BY state_id`)
	if err != nil {
		return nil, fmt.Errorf("check animation states: %w", err)
	}
	defer rows.Close()

	seen := map[animation.State]string{}
	var issues []storage.IntegrityIssue
	for rows.Next() {
		var stateID int64
		var name string
		if err := rows.Scan(&stateID, &name); err != nil {
			return nil, fmt.Errorf("scan animation state: %w", err)
		}
		state := animation.State(stateID)
		if !state.Valid() {
			issues = append(issues, storage.IntegrityIssue{
				Check:  "animation_state_census",
				Detail: fmt.Sprintf("unexpected state id %d (%s)", stateID, name),
			})
			continue
		}
		seen[state] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animation states: %w", err)
	}
	for _, state := range animation.States() {
		name, ok := seen[state]
		if !ok {
			issues = append(issues, storage.IntegrityIssue{
				Check:  "animation_state_census",
				Detail: fmt.Sprintf("state %d (%s) is not seeded", int(state), state),
			})
			continue
		}
		if name != state.String() {
			issues = append(issues, storage.IntegrityIssue{
				Check:  "animation_state_census",
				Detail: fmt.Sprintf("state %d is named %q, want %q", int(state), name, state),
			})
		}
	}
	return issues, nil
}

// checkCharacterTypeCensus verifies exactly the hero and enemy roles are
// seeded.
func (s *Store) checkCharacterTypeCensus(ctx context.Context) ([]storage.IntegrityIssue, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT type_id FROM character_types ORDER BY type_id`)
	if err != nil {
		return nil, fmt.Errorf("check character types: %w", err)
	}
	defer rows.Close()

	seen := map[character.Role]bool{}
	var issues []storage.IntegrityIssue
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan character type: %w", err)
		}
		typed := character.Role(role)
		if !typed.Valid() {
			issues = append(issues, storage.IntegrityIssue{
				Check:  "character_type_census",
				Detail: fmt.Sprintf("unexpected character type %q", role),
			})
			continue
		}
		seen[typed] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character types: %w", err)
	}
	for _, role := range character.Roles() {
		if !seen[role] {
			issues = append(issues, storage.IntegrityIssue{
				Check:  "character_type_census",
				Detail: fmt.Sprintf("character type %q is not seeded", role),
			})
		}
	}
	return issues, nil
}

func (s *Store) runIntegrityScan(ctx context.Context, scan integrityScan) ([]storage.IntegrityIssue, error) {
	rows, err := s.sqlDB.QueryContext(ctx, scan.query)
	if err != nil {
		return nil, fmt.Errorf("run %s check: %w", scan.check, err)
	}
	defer rows.Close()

	var issues []storage.IntegrityIssue
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("scan %s check: %w", scan.check, err)
		}
		issues = append(issues, storage.IntegrityIssue{Check: scan.check, Detail: detail})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s check: %w", scan.check, err)
	}
	return issues, nil
}

// checkForeignKeys runs SQLite's own referential scan as a backstop for
// rows written while enforcement was off.
func (s *Store) checkForeignKeys(ctx context.Context) ([]storage.IntegrityIssue, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return nil, fmt.Errorf("run foreign key check: %w", err)
	}
	defer rows.Close()

	var issues []storage.IntegrityIssue
	for rows.Next() {
		var table, parent string
		var rowID, fkID any
		if err := rows.Scan(&table, &rowID, &parent, &fkID); err != nil {
			return nil, fmt.Errorf("scan foreign key check: %w", err)
		}
		issues = append(issues, storage.IntegrityIssue{
			Check:  "foreign_keys",
			Detail: fmt.Sprintf("%s row %v references a missing %s row", table, rowID, parent),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign key check: %w", err)
	}
	return issues, nil
}

// GetCatalogStatistics returns row counts for every catalog table.
func (s *Store) GetCatalogStatistics(ctx context.Context) (storage.CatalogStatistics, error) {
	if err := ctx.Err(); err != nil {
		return storage.CatalogStatistics{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.CatalogStatistics{}, fmt.Errorf("storage is not configured")
	}
	var stats storage.CatalogStatistics
	counts := []struct {
		table string
		dest  *int
	}{
		{"character_types", &stats.CharacterTypes},
		{"character_stats", &stats.Characters},
		{"hero_stats", &stats.Heroes},
		{"enemy_stats", &stats.Enemies},
		{"asset_packs", &stats.AssetPacks},
		{"animation_states", &stats.AnimationStates},
		{"character_animations", &stats.CharacterAnimations},
		{"special_effects", &stats.SpecialEffects},
		{"character_effects", &stats.CharacterEffects},
		{"import_runs", &stats.ImportRuns},
	}
	for _, count := range counts {
		err := s.sqlDB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+count.table).Scan(count.dest)
		if err != nil {
			return storage.CatalogStatistics{}, fmt.Errorf("count %s: %w", count.table, err)
		}
	}
	return stats, nil
}
