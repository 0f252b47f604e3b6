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

// UpsertCharacterAnimation inserts or replaces the sprite sheet for one
// character/state/pack combination. A nil FrameRate or Loop is stored as
// NULL so the state default applies on resolution.
func (s *Store) UpsertCharacterAnimation(ctx context.Context, record storage.CharacterAnimation) error {
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
	record.PackID = strings.TrimSpace(record.PackID)
	if record.PackID == "" {
		return fmt.Errorf("pack id is required")
	}
	record.SpriteSheetName = strings.TrimSpace(record.SpriteSheetName)
	if record.SpriteSheetName == "" {
		return fmt.Errorf("sprite sheet name is required")
	}
	if !record.State.Valid() {
		return fmt.Errorf("animation state %d is not valid", int(record.State))
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO character_animations (
			character_id, state_id, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate, loop
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(character_id, state_id, pack_id) DO UPDATE SET
			sprite_sheet_name = excluded.sprite_sheet_name,
			frame_count = excluded.frame_count,
			frame_width = excluded.frame_width,
			frame_height = excluded.frame_height,
			frame_rate = excluded.frame_rate,
			loop = excluded.loop`,
		record.CharacterID, int64(record.State), record.PackID,
		record.SpriteSheetName, record.FrameCount, record.FrameWidth,
		record.FrameHeight, toNullFloat(record.FrameRate), toNullBool(record.Loop))
	if err != nil {
		return fmt.Errorf("upsert character animation: %w", err)
	}
	return nil
}

// GetCharacterAnimation returns the stored sprite-sheet row for one
// character/state/pack combination, without default resolution.
func (s *Store) GetCharacterAnimation(ctx context.Context, characterID string, state animation.State, packID string) (storage.CharacterAnimation, error) {
	if err := ctx.Err(); err != nil {
		return storage.CharacterAnimation{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.CharacterAnimation{}, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return storage.CharacterAnimation{}, fmt.Errorf("character id is required")
	}
	packID = strings.TrimSpace(packID)
	if packID == "" {
		return storage.CharacterAnimation{}, fmt.Errorf("pack id is required")
	}
	if !state.Valid() {
		return storage.CharacterAnimation{}, fmt.Errorf("animation state %d is not valid", int(state))
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT character_id, state_id, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate, loop
		FROM character_animations
		WHERE character_id = ? AND state_id = ? AND pack_id = ?`,
		characterID, int64(state), packID)
	record, err := scanCharacterAnimation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.CharacterAnimation{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.CharacterAnimation{}, fmt.Errorf("get character animation: %w", err)
	}
	return record, nil
}

// ListCharacterAnimations returns every stored sprite-sheet row for one
// character, ordered by state then pack.
func (s *Store) ListCharacterAnimations(ctx context.Context, characterID string) ([]storage.CharacterAnimation, error) {
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
		SELECT character_id, state_id, pack_id, sprite_sheet_name,
			frame_count, frame_width, frame_height, frame_rate, loop
		FROM character_animations
		WHERE character_id = ?
		ORDER BY state_id, pack_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("list character animations: %w", err)
	}
	defer rows.Close()

	var records []storage.CharacterAnimation
	for rows.Next() {
		record, err := scanCharacterAnimation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character animation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character animations: %w", err)
	}
	return records, nil
}

// ResolveAnimation returns one animation with the pack base path joined in
// and NULL frame rate or loop replaced by the state default.
func (s *Store) ResolveAnimation(ctx context.Context, characterID string, state animation.State, packID string) (storage.ResolvedAnimation, error) {
	if err := ctx.Err(); err != nil {
		return storage.ResolvedAnimation{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ResolvedAnimation{}, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return storage.ResolvedAnimation{}, fmt.Errorf("character id is required")
	}
	packID = strings.TrimSpace(packID)
	if packID == "" {
		return storage.ResolvedAnimation{}, fmt.Errorf("pack id is required")
	}
	if !state.Valid() {
		return storage.ResolvedAnimation{}, fmt.Errorf("animation state %d is not valid", int(state))
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT character_id, state_id, state_name, pack_id, sprite_sheet_path,
			frame_count, frame_width, frame_height, frame_rate, loop
		FROM character_animation_resolved
		WHERE character_id = ? AND state_id = ? AND pack_id = ?`,
		characterID, int64(state), packID)
	record, err := scanResolvedAnimation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ResolvedAnimation{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.ResolvedAnimation{}, fmt.Errorf("resolve animation: %w", err)
	}
	return record, nil
}

// ListResolvedAnimations returns every animation for one character with
// pack base paths joined in and state defaults applied.
func (s *Store) ListResolvedAnimations(ctx context.Context, characterID string) ([]storage.ResolvedAnimation, error) {
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
		SELECT character_id, state_id, state_name, pack_id, sprite_sheet_path,
			frame_count, frame_width, frame_height, frame_rate, loop
		FROM character_animation_resolved
		WHERE character_id = ?
		ORDER BY state_id, pack_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("list resolved animations: %w", err)
	}
	defer rows.Close()

	var records []storage.ResolvedAnimation
	for rows.Next() {
		record, err := scanResolvedAnimation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resolved animation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolved animations: %w", err)
	}
	return records, nil
}

func scanCharacterAnimation(row rowScanner) (storage.CharacterAnimation, error) {
	var record storage.CharacterAnimation
	var stateID int64
	var frameRate sql.NullFloat64
	var loop sql.NullBool
	err := row.Scan(&record.CharacterID, &stateID, &record.PackID,
		&record.SpriteSheetName, &record.FrameCount, &record.FrameWidth,
		&record.FrameHeight, &frameRate, &loop)
	if err != nil {
		return storage.CharacterAnimation{}, err
	}
	record.State = animation.State(stateID)
	record.FrameRate = fromNullFloat(frameRate)
	record.Loop = fromNullBool(loop)
	return record, nil
}

func scanResolvedAnimation(row rowScanner) (storage.ResolvedAnimation, error) {
	var record storage.ResolvedAnimation
	var stateID int64
	err := row.Scan(&record.CharacterID, &stateID, &record.StateName,
		&record.PackID, &record.SpriteSheetPath, &record.FrameCount,
		&record.FrameWidth, &record.FrameHeight, &record.FrameRate,
		&record.Loop)
	if err != nil {
		return storage.ResolvedAnimation{}, err
	}
	record.State = animation.State(stateID)
	return record, nil
}
