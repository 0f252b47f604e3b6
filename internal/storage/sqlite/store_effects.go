package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/storage"
)

// UpsertSpecialEffect inserts or updates one effect keyed by its unique
// name and returns the effect id.
func (s *Store) UpsertSpecialEffect(ctx context.Context, record storage.SpecialEffect) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return 0, fmt.Errorf("effect name is required")
	}
	record.PackID = strings.TrimSpace(record.PackID)
	if record.PackID == "" {
		return 0, fmt.Errorf("pack id is required")
	}
	record.SpriteSheetName = strings.TrimSpace(record.SpriteSheetName)
	if record.SpriteSheetName == "" {
		return 0, fmt.Errorf("sprite sheet name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO special_effects (
			effect_name, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(effect_name) DO UPDATE SET
			pack_id = excluded.pack_id,
			sprite_sheet_name = excluded.sprite_sheet_name,
			frame_count = excluded.frame_count,
			frame_width = excluded.frame_width,
			frame_height = excluded.frame_height,
			frame_rate = excluded.frame_rate`,
		record.Name, record.PackID, record.SpriteSheetName, record.FrameCount,
		record.FrameWidth, record.FrameHeight, record.FrameRate)
	if err != nil {
		return 0, fmt.Errorf("upsert special effect: %w", err)
	}
	var effectID int64
	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT effect_id FROM special_effects WHERE effect_name = ?`,
		record.Name).Scan(&effectID)
	if err != nil {
		return 0, fmt.Errorf("read special effect id: %w", err)
	}
	return effectID, nil
}

// GetSpecialEffectByName returns one effect by its unique name.
func (s *Store) GetSpecialEffectByName(ctx context.Context, name string) (storage.SpecialEffect, error) {
	if err := ctx.Err(); err != nil {
		return storage.SpecialEffect{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SpecialEffect{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.SpecialEffect{}, fmt.Errorf("effect name is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT effect_id, effect_name, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate
		FROM special_effects
		WHERE effect_name = ?`, name)

	var record storage.SpecialEffect
	err := row.Scan(&record.ID, &record.Name, &record.PackID,
		&record.SpriteSheetName, &record.FrameCount, &record.FrameWidth,
		&record.FrameHeight, &record.FrameRate)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.SpecialEffect{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.SpecialEffect{}, fmt.Errorf("get special effect: %w", err)
	}
	return record, nil
}

// ListSpecialEffects returns every effect in name order.
func (s *Store) ListSpecialEffects(ctx context.Context) ([]storage.SpecialEffect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT effect_id, effect_name, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate
		FROM special_effects
		ORDER BY effect_name`)
	if err != nil {
		return nil, fmt.Errorf("list special effects: %w", err)
	}
	defer rows.Close()

	var records []storage.SpecialEffect
	for rows.Next() {
		var record storage.SpecialEffect
		if err := rows.Scan(&record.ID, &record.Name, &record.PackID,
			&record.SpriteSheetName, &record.FrameCount, &record.FrameWidth,
			&record.FrameHeight, &record.FrameRate); err != nil {
			return nil, fmt.Errorf("scan special effect: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate special effects: %w", err)
	}
	return records, nil
}

// LinkCharacterEffect attaches an effect to a character's trigger state.
// It returns ErrAlreadyExists when the link is already present.
func (s *Store) LinkCharacterEffect(ctx context.Context, link storage.CharacterEffect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	link.CharacterID = strings.TrimSpace(link.CharacterID)
	if link.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}
	if link.EffectID <= 0 {
		return fmt.Errorf("effect id is required")
	}
	if !link.TriggerState.Valid() {
		return fmt.Errorf("animation state %d is not valid", int(link.TriggerState))
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO character_effects (character_id, effect_id, trigger_state_id, offset_x, offset_y)
		VALUES (?, ?, ?, ?, ?)`,
		link.CharacterID, link.EffectID, int64(link.TriggerState),
		link.OffsetX, link.OffsetY)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("link character effect: %w", err)
	}
	return nil
}

// ListCharacterEffects returns every effect link for one character.
func (s *Store) ListCharacterEffects(ctx context.Context, characterID string) ([]storage.CharacterEffect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT character_id, effect_id, trigger_state_id, offset_x, offset_y
		FROM character_effects
		WHERE character_id = ?
		ORDER BY trigger_state_id, effect_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("list character effects: %w", err)
	}
	defer rows.Close()

	var links []storage.CharacterEffect
	for rows.Next() {
		var link storage.CharacterEffect
		var stateID int64
		if err := rows.Scan(&link.CharacterID, &link.EffectID, &stateID,
			&link.OffsetX, &link.OffsetY); err != nil {
			return nil, fmt.Errorf("scan character effect: %w", err)
		}
		link.TriggerState = animation.State(stateID)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character effects: %w", err)
	}
	return links, nil
}

// ListTriggeredEffects returns the effects a character fires on one state,
// with effect and pack metadata joined in for rendering.
func (s *Store) ListTriggeredEffects(ctx context.Context, characterID string, state animation.State) ([]storage.TriggeredEffect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}
	if !state.Valid() {
		return nil, fmt.Errorf("animation state %d is not valid", int(state))
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT ce.character_id, ce.trigger_state_id, se.effect_name,
			ap.base_path || '/' || se.sprite_sheet_name,
			se.frame_count, se.frame_width, se.frame_height, se.frame_rate,
			ce.offset_x, ce.offset_y
		FROM character_effects ce
		JOIN special_effects se ON se.effect_id = ce.effect_id
		JOIN asset_packs ap ON ap.pack_id = se.pack_id
		WHERE ce.character_id = ? AND ce.trigger_state_id = ?
		ORDER BY se.effect_name`, characterID, int64(state))
	if err != nil {
		return nil, fmt.Errorf("list triggered effects: %w", err)
	}
	defer rows.Close()

	var records []storage.TriggeredEffect
	for rows.Next() {
		var record storage.TriggeredEffect
		var stateID int64
		if err := rows.Scan(&record.CharacterID, &stateID, &record.EffectName,
			&record.SpriteSheetPath, &record.FrameCount, &record.FrameWidth,
			&record.FrameHeight, &record.FrameRate, &record.OffsetX,
			&record.OffsetY); err != nil {
			return nil, fmt.Errorf("scan triggered effect: %w", err)
		}
		record.TriggerState = animation.State(stateID)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate triggered effects: %w", err)
	}
	return records, nil
}
