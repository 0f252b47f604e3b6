package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/emberkeep/spritebank/internal/domain/character"
	"github.com/emberkeep/spritebank/internal/storage"
)

// PutCharacter inserts one base stat block. It returns ErrAlreadyExists
// when the character id is taken; seeded rows are never overwritten.
func (s *Store) PutCharacter(ctx context.Context, record storage.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		return fmt.Errorf("character id is required")
	}
	if !record.Role.Valid() {
		return fmt.Errorf("character role %q is not valid", record.Role)
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO character_stats (
			character_id, type_id, max_health, speed, damage, attack_range,
			armor, magic_resist, critical_chance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, string(record.Role), record.MaxHealth, record.Speed,
		record.Damage, record.AttackRange, record.Armor, record.MagicResist,
		record.CriticalChance)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter returns one base stat block.
func (s *Store) GetCharacter(ctx context.Context, id string) (storage.Character, error) {
	if err := ctx.Err(); err != nil {
		return storage.Character{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Character{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Character{}, fmt.Errorf("character id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT character_id, type_id, max_health, speed, damage, attack_range,
			armor, magic_resist, critical_chance
		FROM character_stats
		WHERE character_id = ?`, id)
	record, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Character{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Character{}, fmt.Errorf("get character: %w", err)
	}
	return record, nil
}

// ListCharacters returns every base stat block in id order.
func (s *Store) ListCharacters(ctx context.Context) ([]storage.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT character_id, type_id, max_health, speed, damage, attack_range,
			armor, magic_resist, critical_chance
		FROM character_stats
		ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	var records []storage.Character
	for rows.Next() {
		record, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return records, nil
}

// PutHeroStats inserts the hero extension for a hero character. It
// returns ErrNotFound when the character does not exist, ErrRoleMismatch
// when the character is not a hero, and ErrAlreadyExists when the
// extension row is already present. The role guard and the insert are a
// single statement, so a mismatched write stores nothing.
func (s *Store) PutHeroStats(ctx context.Context, record storage.HeroStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.CharacterID = strings.TrimSpace(record.CharacterID)
	if record.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}
	record.SpecialAbilityName = strings.TrimSpace(record.SpecialAbilityName)
	if record.SpecialAbilityName == "" {
		return fmt.Errorf("special ability name is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO hero_stats (character_id, special_cooldown, special_ability_name, unlock_level)
		SELECT character_id, ?, ?, ?
		FROM character_stats
		WHERE character_id = ? AND type_id = ?`,
		record.SpecialCooldown, record.SpecialAbilityName, record.UnlockLevel,
		record.CharacterID, string(character.RoleHero))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put hero stats: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put hero stats: %w", err)
	}
	if affected == 0 {
		return s.classifyExtensionFailure(ctx, record.CharacterID, character.RoleHero)
	}
	return nil
}

// GetHero returns the joined base and hero extension rows for one hero.
func (s *Store) GetHero(ctx context.Context, id string) (storage.Hero, error) {
	if err := ctx.Err(); err != nil {
		return storage.Hero{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Hero{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Hero{}, fmt.Errorf("character id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT c.character_id, c.type_id, c.max_health, c.speed, c.damage,
			c.attack_range, c.armor, c.magic_resist, c.critical_chance,
			h.special_cooldown, h.special_ability_name, h.unlock_level
		FROM character_stats AS c
		JOIN hero_stats AS h ON h.character_id = c.character_id
		WHERE c.character_id = ?`, id)

	var record storage.Hero
	var role string
	err := row.Scan(&record.ID, &role, &record.MaxHealth, &record.Speed,
		&record.Damage, &record.AttackRange, &record.Armor, &record.MagicResist,
		&record.CriticalChance, &record.SpecialCooldown,
		&record.SpecialAbilityName, &record.UnlockLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Hero{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Hero{}, fmt.Errorf("get hero: %w", err)
	}
	record.Role = character.Role(role)
	return record, nil
}

// ListHeroIDs returns the ids of every character with a hero extension.
func (s *Store) ListHeroIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.listExtensionIDs(ctx, "hero_stats")
}

// PutEnemyStats inserts the enemy extension for an enemy character. The
// error contract mirrors PutHeroStats.
func (s *Store) PutEnemyStats(ctx context.Context, record storage.EnemyStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.CharacterID = strings.TrimSpace(record.CharacterID)
	if record.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO enemy_stats (character_id, spawn_weight, experience_value, gold_drop_min, gold_drop_max)
		SELECT character_id, ?, ?, ?, ?
		FROM character_stats
		WHERE character_id = ? AND type_id = ?`,
		record.SpawnWeight, record.ExperienceValue, record.GoldDropMin,
		record.GoldDropMax, record.CharacterID, string(character.RoleEnemy))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put enemy stats: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put enemy stats: %w", err)
	}
	if affected == 0 {
		return s.classifyExtensionFailure(ctx, record.CharacterID, character.RoleEnemy)
	}
	return nil
}

// GetEnemy returns the joined base and enemy extension rows for one enemy.
func (s *Store) GetEnemy(ctx context.Context, id string) (storage.Enemy, error) {
	if err := ctx.Err(); err != nil {
		return storage.Enemy{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Enemy{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Enemy{}, fmt.Errorf("character id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT c.character_id, c.type_id, c.max_health, c.speed, c.damage,
			c.attack_range, c.armor, c.magic_resist, c.critical_chance,
			e.spawn_weight, e.experience_value, e.gold_drop_min, e.gold_drop_max
		FROM character_stats AS c
		JOIN enemy_stats AS e ON e.character_id = c.character_id
		WHERE c.character_id = ?`, id)

	var record storage.Enemy
	var role string
	err := row.Scan(&record.ID, &role, &record.MaxHealth, &record.Speed,
		&record.Damage, &record.AttackRange, &record.Armor, &record.MagicResist,
		&record.CriticalChance, &record.SpawnWeight, &record.ExperienceValue,
		&record.GoldDropMin, &record.GoldDropMax)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Enemy{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Enemy{}, fmt.Errorf("get enemy: %w", err)
	}
	record.Role = character.Role(role)
	return record, nil
}

// ListEnemyIDs returns the ids of every character with an enemy extension.
func (s *Store) ListEnemyIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.listExtensionIDs(ctx, "enemy_stats")
}

func (s *Store) listExtensionIDs(ctx context.Context, table string) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT character_id FROM `+table+` ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s ids: %w", table, err)
	}
	return ids, nil
}

// classifyExtensionFailure decides why a guarded extension write matched no
// base row.
func (s *Store) classifyExtensionFailure(ctx context.Context, id string, want character.Role) error {
	var role string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT type_id FROM character_stats WHERE character_id = ?`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check character role: %w", err)
	}
	if character.Role(role) != want {
		return storage.ErrRoleMismatch
	}
	return fmt.Errorf("put %s stats: no row written", want)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (storage.Character, error) {
	var record storage.Character
	var role string
	err := row.Scan(&record.ID, &role, &record.MaxHealth, &record.Speed,
		&record.Damage, &record.AttackRange, &record.Armor, &record.MagicResist,
		&record.CriticalChance)
	if err != nil {
		return storage.Character{}, err
	}
	record.Role = character.Role(role)
	return record, nil
}
